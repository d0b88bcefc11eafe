package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreatePostRequestValidation(t *testing.T) {
	tests := []struct {
		name       string
		req        CreatePostRequest
		wantFields []string
	}{
		{
			name: "valid request",
			req: CreatePostRequest{
				Author:  Author{FirstName: "Jane", LastName: "Doe"},
				Title:   "T",
				Content: "C",
			},
		},
		{
			name: "missing title",
			req: CreatePostRequest{
				Author:  Author{FirstName: "Jane", LastName: "Doe"},
				Content: "C",
			},
			wantFields: []string{"title"},
		},
		{
			name: "missing content",
			req: CreatePostRequest{
				Author: Author{FirstName: "Jane", LastName: "Doe"},
				Title:  "T",
			},
			wantFields: []string{"content"},
		},
		{
			name: "partial author",
			req: CreatePostRequest{
				Author:  Author{FirstName: "Jane"},
				Title:   "T",
				Content: "C",
			},
			wantFields: []string{"author.lastName"},
		},
		{
			name:       "empty request",
			req:        CreatePostRequest{},
			wantFields: []string{"author.firstName", "author.lastName", "title", "content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			var got []string
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}

func TestUpdatePostRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdatePostRequest
		wantErr bool
	}{
		{name: "no fields", req: UpdatePostRequest{}},
		{name: "title only", req: UpdatePostRequest{Title: strPtr("new")}},
		{name: "id is ignored", req: UpdatePostRequest{ID: strPtr("")}},
		{name: "empty title", req: UpdatePostRequest{Title: strPtr("")}, wantErr: true},
		{name: "empty content", req: UpdatePostRequest{Content: strPtr("")}, wantErr: true},
		{
			name: "full author",
			req:  UpdatePostRequest{Author: &Author{FirstName: "A", LastName: "B"}},
		},
		{
			name:    "partial author",
			req:     UpdatePostRequest{Author: &Author{LastName: "B"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBlogPostValidate(t *testing.T) {
	post := &BlogPost{
		Author:  Author{FirstName: "Jane", LastName: "Doe"},
		Title:   "T",
		Content: "C",
	}
	assert.NoError(t, post.Validate())

	post.Author.FirstName = ""
	assert.Error(t, post.Validate())
}

func TestBeforeCreate(t *testing.T) {
	post := &BlogPost{Title: "T"}
	assert.True(t, post.Created.IsZero())
	post.BeforeCreate()
	assert.False(t, post.Created.IsZero())

	fixed := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	post = &BlogPost{Created: fixed}
	post.BeforeCreate()
	assert.Equal(t, fixed, post.Created)
}

func TestSerialize(t *testing.T) {
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	post := &BlogPost{
		ID:      "abc",
		Author:  Author{FirstName: "Jane", LastName: "Doe"},
		Title:   "T",
		Content: "C",
		Created: created,
	}

	view := post.Serialize()
	assert.Equal(t, "Jane Doe", view.Author)
	assert.Equal(t, "abc", view.ID)

	data, err := json.Marshal(view)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 5)
	for _, key := range []string{"id", "title", "content", "author", "created"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "Jane Doe", raw["author"])
	assert.Equal(t, "2024-05-06T07:08:09Z", raw["created"])
}

func TestSerializeAllNeverNil(t *testing.T) {
	views := SerializeAll(nil)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestPostUpdate(t *testing.T) {
	created := time.Now().UTC()
	post := &BlogPost{
		ID:      "id-1",
		Author:  Author{FirstName: "Jane", LastName: "Doe"},
		Title:   "old title",
		Content: "old content",
		Created: created,
	}

	t.Run("empty update", func(t *testing.T) {
		assert.True(t, PostUpdate{}.IsEmpty())
		before := *post
		PostUpdate{}.Apply(post)
		assert.Equal(t, before, *post)
	})

	t.Run("partial update", func(t *testing.T) {
		u := PostUpdate{Title: strPtr("new title")}
		assert.False(t, u.IsEmpty())
		u.Apply(post)
		assert.Equal(t, "new title", post.Title)
		assert.Equal(t, "old content", post.Content)
		assert.Equal(t, "Jane Doe", post.Author.FullName())
		assert.Equal(t, "id-1", post.ID)
		assert.Equal(t, created, post.Created)
	})

	t.Run("request drops id", func(t *testing.T) {
		req := UpdatePostRequest{ID: strPtr("other"), Content: strPtr("c")}
		u := req.ToUpdate()
		u.Apply(post)
		assert.Equal(t, "id-1", post.ID)
		assert.Equal(t, "c", post.Content)
	})
}
