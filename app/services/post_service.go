package services

import (
	"context"
	"errors"
	"fmt"

	"blogposts/app/models"
	"blogposts/app/repositories"

	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when the addressed post does not exist.
var ErrNotFound = repositories.ErrNotFound

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns every stored post in its outbound form.
func (s *PostService) ListPosts(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return models.SerializeAll(posts), nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id string) (models.PostView, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return models.PostView{}, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	return post.Serialize(), nil
}

// CreatePost validates the request and stores a new post. Storage assigns
// the ID and creation time.
func (s *PostService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (models.PostView, error) {
	if err := req.Validate(); err != nil {
		return models.PostView{}, err
	}

	post := req.ToPost()
	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.PostView{}, fmt.Errorf("failed to create post: %w", err)
	}
	return post.Serialize(), nil
}

// UpdatePost applies the fields present in req to the post with the given ID.
func (s *PostService) UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.postRepo.UpdateByID(ctx, id, req.ToUpdate()); err != nil {
		return fmt.Errorf("failed to update post %s: %w", id, err)
	}
	return nil
}

// DeletePost removes a post. Deleting a missing post succeeds.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	err := s.postRepo.DeleteByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		log.Debug().Str("post_id", id).Msg("Delete of missing post ignored")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	return nil
}
