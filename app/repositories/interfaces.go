package repositories

import (
	"context"
	"errors"

	"blogposts/app/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// PostRepository defines the document store operations on blog posts.
// Implementations assign ID and default Created on insert.
type PostRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	InsertMany(ctx context.Context, posts []*models.BlogPost) error
	FindAll(ctx context.Context) ([]*models.BlogPost, error)
	FindByID(ctx context.Context, id string) (*models.BlogPost, error)
	// FindOne returns an arbitrary stored post, or ErrNotFound when empty.
	FindOne(ctx context.Context) (*models.BlogPost, error)
	UpdateByID(ctx context.Context, id string, update models.PostUpdate) error
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// DropAll removes every post. Reserved for administration and tests.
	DropAll(ctx context.Context) error
}
