package seed

import (
	"context"
	"fmt"

	"blogposts/app/models"
	"blogposts/app/repositories"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog/log"
)

// DefaultCount is the number of posts seeded when no count is given.
const DefaultCount = 10

// Generator produces random blog posts.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator returns a Generator. A zero seed draws a random one.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Post returns a random, unsaved post with every required field set.
func (g *Generator) Post() *models.BlogPost {
	return &models.BlogPost{
		Author: models.Author{
			FirstName: g.faker.FirstName(),
			LastName:  g.faker.LastName(),
		},
		Title:   g.faker.Sentence(5),
		Content: g.faker.Paragraph(2, 4, 12, " "),
	}
}

// Posts returns n random posts. A negative n yields none.
func (g *Generator) Posts(n int) []*models.BlogPost {
	if n < 0 {
		n = 0
	}
	posts := make([]*models.BlogPost, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, g.Post())
	}
	return posts
}

// Seed inserts n random posts and returns them with their assigned IDs.
func Seed(ctx context.Context, repo repositories.PostRepository, n int) ([]*models.BlogPost, error) {
	if n < 0 {
		return nil, fmt.Errorf("seed count must not be negative, got %d", n)
	}

	posts := NewGenerator(0).Posts(n)
	if err := repo.InsertMany(ctx, posts); err != nil {
		return nil, fmt.Errorf("failed to seed posts: %w", err)
	}

	log.Debug().Int("count", n).Msg("Seeded posts")
	return posts, nil
}
