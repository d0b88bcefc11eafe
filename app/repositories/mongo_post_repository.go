package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogposts/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ PostRepository = (*MongoPostRepository)(nil)

// MongoPostRepository implements PostRepository on a MongoDB collection.
// Post IDs are ObjectID hex strings.
type MongoPostRepository struct {
	coll *mongo.Collection
}

// NewMongoPostRepository creates a repository over coll.
func NewMongoPostRepository(coll *mongo.Collection) *MongoPostRepository {
	return &MongoPostRepository{coll: coll}
}

// postDocument is the BSON shape of a stored post.
type postDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Author  models.Author      `bson:"author"`
	Title   string             `bson:"title"`
	Content string             `bson:"content"`
	Created time.Time          `bson:"created"`
}

func newPostDocument(post *models.BlogPost) postDocument {
	oid := primitive.NewObjectID()
	post.ID = oid.Hex()
	post.BeforeCreate()
	// Mongo stores milliseconds; keep the caller's copy consistent with storage.
	post.Created = post.Created.Truncate(time.Millisecond)

	return postDocument{
		ID:      oid,
		Author:  post.Author,
		Title:   post.Title,
		Content: post.Content,
		Created: post.Created,
	}
}

func (d *postDocument) toDomain() *models.BlogPost {
	return &models.BlogPost{
		ID:      d.ID.Hex(),
		Author:  d.Author,
		Title:   d.Title,
		Content: d.Content,
		Created: d.Created.UTC(),
	}
}

// idFilter builds an _id filter. An id that is not a valid ObjectID cannot
// match any document.
func idFilter(id string) (bson.D, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.D{{Key: "_id", Value: oid}}, nil
}

// Create inserts a new post
func (r *MongoPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if err := validatePosts(post); err != nil {
		return err
	}

	doc := newPostDocument(post)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// InsertMany inserts all posts in one round trip
func (r *MongoPostRepository) InsertMany(ctx context.Context, posts []*models.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}
	if err := validatePosts(posts...); err != nil {
		return err
	}

	docs := make([]interface{}, 0, len(posts))
	for _, post := range posts {
		docs = append(docs, newPostDocument(post))
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert posts: %w", err)
	}
	return nil
}

// FindAll returns every post ordered by _id
func (r *MongoPostRepository) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]*models.BlogPost, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toDomain())
	}
	return posts, nil
}

func (r *MongoPostRepository) findOne(ctx context.Context, filter bson.D) (*models.BlogPost, error) {
	var doc postDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a post by ID
func (r *MongoPostRepository) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, filter)
}

// FindOne returns an arbitrary post
func (r *MongoPostRepository) FindOne(ctx context.Context) (*models.BlogPost, error) {
	return r.findOne(ctx, bson.D{})
}

// UpdateByID $sets only the fields present in update
func (r *MongoPostRepository) UpdateByID(ctx context.Context, id string, update models.PostUpdate) error {
	filter, err := idFilter(id)
	if err != nil {
		return err
	}

	// An empty $set is rejected by the server, so only check existence.
	if update.IsEmpty() {
		n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("failed to check post: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}

	set := bson.D{}
	if update.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *update.Title})
	}
	if update.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *update.Content})
	}
	if update.Author != nil {
		set = append(set, bson.E{Key: "author", Value: *update.Author})
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID deletes a post. ErrNotFound is returned when absent.
func (r *MongoPostRepository) DeleteByID(ctx context.Context, id string) error {
	filter, err := idFilter(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of posts
func (r *MongoPostRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return int(n), nil
}

// DropAll removes every post
func (r *MongoPostRepository) DropAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to drop posts: %w", err)
	}
	return nil
}
