package routes

import (
	"net/http"

	"blogposts/app/controllers"
	"blogposts/app/middleware"

	"github.com/gorilla/mux"
)

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(postController *controllers.PostController) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)

	// Posts endpoints
	router.HandleFunc("/posts", postController.Index).Methods(http.MethodGet)
	router.HandleFunc("/posts", postController.Create).Methods(http.MethodPost)
	router.HandleFunc("/posts/{id}", postController.Show).Methods(http.MethodGet)
	router.HandleFunc("/posts/{id}", postController.Update).Methods(http.MethodPut)
	router.HandleFunc("/posts/{id}", postController.Delete).Methods(http.MethodDelete)

	// Router middleware does not run for these.
	router.NotFoundHandler = middleware.RequestID(middleware.Logger(errorHandler(http.StatusNotFound, "not found")))
	router.MethodNotAllowedHandler = middleware.RequestID(middleware.Logger(errorHandler(http.StatusMethodNotAllowed, "method not allowed")))

	return router
}

func errorHandler(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		controllers.SendError(w, status, message)
	})
}
