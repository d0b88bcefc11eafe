package seed

import (
	"context"
	"errors"
	"testing"

	"blogposts/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorPost(t *testing.T) {
	g := NewGenerator(42)

	for _, post := range g.Posts(20) {
		assert.NoError(t, post.Validate())
		assert.Empty(t, post.ID)
		assert.True(t, post.Created.IsZero())
	}
}

func TestGeneratorPostsNegativeCount(t *testing.T) {
	g := NewGenerator(1)
	assert.NotPanics(t, func() {
		assert.Empty(t, g.Posts(-3))
	})
	assert.Empty(t, g.Posts(0))
}

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(7).Post()
	b := NewGenerator(7).Post()
	assert.Equal(t, a, b)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewPostRepository()

	posts, err := Seed(ctx, repo, DefaultCount)
	require.NoError(t, err)
	require.Len(t, posts, DefaultCount)
	for _, p := range posts {
		assert.NotEmpty(t, p.ID)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultCount, count)
}

func TestSeedErrors(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewPostRepository()

	_, err := Seed(ctx, repo, -1)
	assert.Error(t, err)

	repo.Err = errors.New("store offline")
	_, err = Seed(ctx, repo, 3)
	assert.ErrorIs(t, err, repo.Err)
}
