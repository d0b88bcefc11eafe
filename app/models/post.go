package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so errors match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one rejected field of a request body.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError is returned when a request body fails validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return "invalid blog post: " + strings.Join(parts, ", ")
}

// validateStruct runs the struct tags and converts failures into a
// *ValidationError.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:  fieldPath(fe.Namespace()),
			Reason: reason(fe),
		})
	}
	return out
}

// fieldPath drops the struct type name from a validator namespace,
// "CreatePostRequest.author.firstName" becomes "author.firstName".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Validate checks that a stored post carries every required field.
func (p *BlogPost) Validate() error {
	return validateStruct(p)
}

// BeforeCreate sets up any necessary fields before creation
func (p *BlogPost) BeforeCreate() {
	if p.Created.IsZero() {
		p.Created = time.Now().UTC()
	}
}

// FullName is the display form of the author.
func (a Author) FullName() string {
	return fmt.Sprintf("%s %s", a.FirstName, a.LastName)
}

// Serialize maps a stored post to its outbound representation.
func (p *BlogPost) Serialize() PostView {
	return PostView{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author:  p.Author.FullName(),
		Created: p.Created,
	}
}

// SerializeAll maps every post; the result is never nil.
func SerializeAll(posts []*BlogPost) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, p.Serialize())
	}
	return views
}

// Validate checks that all required fields of a create request are present.
func (r *CreatePostRequest) Validate() error {
	return validateStruct(r)
}

// ToPost builds a new, unsaved post from the request. ID and Created are left
// for storage to assign.
func (r *CreatePostRequest) ToPost() *BlogPost {
	return &BlogPost{
		Author:  r.Author,
		Title:   r.Title,
		Content: r.Content,
	}
}

// Validate checks the fields present in an update request.
func (r *UpdatePostRequest) Validate() error {
	return validateStruct(r)
}

// ToUpdate keeps only the updatable fields of the request.
func (r *UpdatePostRequest) ToUpdate() PostUpdate {
	return PostUpdate{
		Title:   r.Title,
		Content: r.Content,
		Author:  r.Author,
	}
}

// IsEmpty reports whether the update changes nothing.
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Author == nil
}

// Apply writes the present fields onto p. ID and Created are never touched.
func (u PostUpdate) Apply(p *BlogPost) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Author != nil {
		p.Author = *u.Author
	}
}
