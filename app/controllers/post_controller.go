package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"blogposts/app/models"
	"blogposts/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), &req)
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	w.Header().Set("Location", "/posts/"+post.ID)
	sendJSON(w, http.StatusCreated, post)
}

// Update applies a partial update to an existing post. An empty body is an
// empty update.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		SendError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if err := pc.postService.UpdatePost(r.Context(), mux.Vars(r)["id"], &req); err != nil {
		pc.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := pc.postService.DeletePost(r.Context(), mux.Vars(r)["id"]); err != nil {
		pc.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper methods for consistent response handling

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []models.FieldError `json:"fields,omitempty"`
}

// handleError maps service errors onto status codes. Storage faults are
// logged and answered with a generic message.
func (pc *PostController) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, services.ErrNotFound):
		SendError(w, http.StatusNotFound, "Post not found")
	default:
		log.Error().
			Err(err).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		SendError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// SendError writes a JSON error body with the given status.
func SendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, errorResponse{Error: message})
}
