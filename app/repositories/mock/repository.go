package mock

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"blogposts/app/models"
	"blogposts/app/repositories"
)

// PostRepository is an in-memory repositories.PostRepository for tests.
// Setting Err makes every call fail with it.
type PostRepository struct {
	Err error

	posts  map[string]*models.BlogPost
	order  []string
	nextID int
	mutex  sync.RWMutex
}

var _ repositories.PostRepository = (*PostRepository)(nil)

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[string]*models.BlogPost),
		nextID: 1,
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[string]*models.BlogPost)
	m.order = nil
	m.nextID = 1
	m.Err = nil
}

func validate(posts []*models.BlogPost) error {
	for _, p := range posts {
		if p == nil {
			return errors.New("post cannot be nil")
		}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (m *PostRepository) insert(post *models.BlogPost) {
	post.ID = strconv.Itoa(m.nextID)
	m.nextID++
	if post.Created.IsZero() {
		post.Created = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	stored := *post
	m.posts[post.ID] = &stored
	m.order = append(m.order, post.ID)
}

func (m *PostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if err := validate([]*models.BlogPost{post}); err != nil {
		return err
	}
	m.insert(post)
	return nil
}

func (m *PostRepository) InsertMany(ctx context.Context, posts []*models.BlogPost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if err := validate(posts); err != nil {
		return err
	}
	for _, p := range posts {
		m.insert(p)
	}
	return nil
}

func (m *PostRepository) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	posts := make([]*models.BlogPost, 0, len(m.order))
	for _, id := range m.order {
		if p, ok := m.posts[id]; ok {
			copied := *p
			posts = append(posts, &copied)
		}
	}
	return posts, nil
}

func (m *PostRepository) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) FindOne(ctx context.Context) (*models.BlogPost, error) {
	posts, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, repositories.ErrNotFound
	}
	return posts[0], nil
}

func (m *PostRepository) UpdateByID(ctx context.Context, id string, update models.PostUpdate) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return repositories.ErrNotFound
	}
	update.Apply(post)
	return nil
}

func (m *PostRepository) DeleteByID(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	for i, orderedID := range m.order {
		if orderedID == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *PostRepository) Count(ctx context.Context) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.posts), nil
}

func (m *PostRepository) DropAll(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.posts = make(map[string]*models.BlogPost)
	m.order = nil
	return nil
}
