package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"blogposts/app/models"

	"github.com/google/uuid"
)

const (
	// PostKeyPrefix namespaces blog post documents in Badger.
	PostKeyPrefix = "post:"
)

// newID returns a time-ordered identifier so key iteration follows insertion.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// validatePosts rejects nil posts and posts missing a required field, so a
// batch is written whole or not at all.
func validatePosts(posts ...*models.BlogPost) error {
	for _, post := range posts {
		if post == nil {
			return errors.New("post cannot be nil")
		}
		if err := post.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func postKey(id string) []byte {
	return []byte(PostKeyPrefix + id)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if entity == nil {
		return errors.New("failed to unmarshal entity: nil target")
	}
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
