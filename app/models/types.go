package models

import "time"

// Author is the composite author stored on every blog post.
type Author struct {
	FirstName string `json:"firstName" bson:"firstName" validate:"required"`
	LastName  string `json:"lastName" bson:"lastName" validate:"required"`
}

// BlogPost is the stored shape of a blog post.
type BlogPost struct {
	ID      string    `json:"id"`
	Author  Author    `json:"author"`
	Title   string    `json:"title" validate:"required"`
	Content string    `json:"content" validate:"required"`
	Created time.Time `json:"created"`
}

// PostView is the outbound representation of a blog post. Author is the
// display name, never the nested object.
type PostView struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Created time.Time `json:"created"`
}

// CreatePostRequest is the accepted body of POST /posts.
type CreatePostRequest struct {
	Author  Author `json:"author"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest is the accepted body of PUT /posts/{id}. A nil field was
// absent from the body. ID is accepted and ignored.
type UpdatePostRequest struct {
	ID      *string `json:"id"`
	Title   *string `json:"title" validate:"omitempty,min=1"`
	Content *string `json:"content" validate:"omitempty,min=1"`
	Author  *Author `json:"author"`
}

// PostUpdate is a partial update handed to storage.
type PostUpdate struct {
	Title   *string
	Content *string
	Author  *Author
}
