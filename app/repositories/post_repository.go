package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"

	"blogposts/app/models"

	"github.com/dgraph-io/badger/v4"
)

var _ PostRepository = (*BadgerPostRepository)(nil)

// BadgerPostRepository implements PostRepository using BadgerDB. Each post is
// a JSON document under PostKeyPrefix+id.
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// prepare assigns an ID and default creation time and encodes the post.
func prepare(post *models.BlogPost) ([]byte, []byte, error) {
	id, err := newID()
	if err != nil {
		return nil, nil, err
	}
	post.ID = id
	post.BeforeCreate()

	data, err := marshalEntity(post)
	if err != nil {
		return nil, nil, err
	}
	return postKey(post.ID), data, nil
}

// Create stores a new post
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validatePosts(post); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key, data, err := prepare(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// InsertMany stores all posts in a single write batch.
func (r *BadgerPostRepository) InsertMany(ctx context.Context, posts []*models.BlogPost) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validatePosts(posts...); err != nil {
		return err
	}

	wb := r.db.NewWriteBatch()
	defer wb.Cancel()

	for _, post := range posts {
		key, data, err := prepare(post)
		if err != nil {
			return err
		}
		if err := wb.Set(key, data); err != nil {
			return fmt.Errorf("failed to queue post %s: %w", post.ID, err)
		}
	}
	return wb.Flush()
}

// FindAll returns every stored post in key order
func (r *BadgerPostRepository) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := make([]*models.BlogPost, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var post models.BlogPost
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to decode post: %w", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func getPost(txn *badger.Txn, id string) (*models.BlogPost, error) {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var post models.BlogPost
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &post)
	}); err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByID retrieves a post by ID
func (r *BadgerPostRepository) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrNotFound
	}

	var post *models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		post, err = getPost(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// FindOne returns the first post in key order
func (r *BadgerPostRepository) FindOne(ctx context.Context) (*models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var post *models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		opts.PrefetchSize = 1
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Rewind()
		if !it.Valid() {
			return ErrNotFound
		}
		post = &models.BlogPost{}
		return it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, post)
		})
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdateByID applies a partial update inside one read-modify-write transaction
func (r *BadgerPostRepository) UpdateByID(ctx context.Context, id string, update models.PostUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return ErrNotFound
	}

	return r.db.Update(func(txn *badger.Txn) error {
		post, err := getPost(txn, id)
		if err != nil {
			return err
		}
		if update.IsEmpty() {
			return nil
		}

		update.Apply(post)
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(id), data)
	})
}

// DeleteByID deletes a post by ID. ErrNotFound is returned when absent.
func (r *BadgerPostRepository) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return ErrNotFound
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)

		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(key)
	})
}

// Count returns the number of stored posts
func (r *BadgerPostRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// DropAll removes every post
func (r *BadgerPostRepository) DropAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var keys [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}

	wb := r.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return fmt.Errorf("failed to queue delete: %w", err)
		}
	}
	return wb.Flush()
}

// Backup writes a full backup of the database to w.
func (r *BadgerPostRepository) Backup(w io.Writer) error {
	if _, err := r.db.Backup(w, 0); err != nil {
		return fmt.Errorf("failed to back up database: %w", err)
	}
	return nil
}

// Restore loads a backup produced by Backup.
func (r *BadgerPostRepository) Restore(rd io.Reader) error {
	if err := r.db.Load(rd, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}
