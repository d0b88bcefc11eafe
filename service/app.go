package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"blogposts/app/config"
	"blogposts/app/controllers"
	"blogposts/app/repositories"
	"blogposts/app/routes"
	"blogposts/app/services"

	"github.com/rs/zerolog/log"
)

const readHeaderTimeout = 5 * time.Second

// App is a running blog post service: an open store and an HTTP listener.
type App struct {
	store    *repositories.Store
	server   *http.Server
	listener net.Listener
	serveErr chan error
}

// NewHandler wires the repository, service, controller and router layers.
func NewHandler(posts repositories.PostRepository) http.Handler {
	postController := controllers.NewPostController(services.NewPostService(posts))
	return routes.SetupRoutes(postController)
}

// Start opens the configured store and begins serving HTTP. It returns once
// the listener is bound.
func Start(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := repositories.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.HTTP.Addr, err)
	}

	app := &App{
		store:    store,
		listener: listener,
		server: &http.Server{
			Handler:           NewHandler(store.Posts),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		serveErr: make(chan error, 1),
	}

	go func() {
		err := app.server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		app.serveErr <- err
		close(app.serveErr)
	}()

	log.Info().Str("addr", app.Addr()).Str("driver", store.Driver()).Msg("Blog post service started")
	return app, nil
}

// Addr is the bound listen address.
func (a *App) Addr() string {
	return a.listener.Addr().String()
}

// URL is the base URL of the running server.
func (a *App) URL() string {
	return "http://" + a.Addr()
}

// Store exposes the backing store, used by tests and administration.
func (a *App) Store() *repositories.Store {
	return a.store
}

// Done yields the serve error, or nil after a clean shutdown.
func (a *App) Done() <-chan error {
	return a.serveErr
}

// Stop shuts the HTTP server down gracefully and closes the store.
func (a *App) Stop(ctx context.Context) error {
	shutdownErr := a.server.Shutdown(ctx)
	if shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("Graceful shutdown failed")
	}
	<-a.serveErr

	if err := a.store.Close(); err != nil {
		return errors.Join(shutdownErr, fmt.Errorf("failed to close store: %w", err))
	}
	log.Info().Msg("Blog post service stopped")
	return shutdownErr
}

// Run starts the service and blocks until SIGINT or SIGTERM, then shuts down
// within cfg.HTTP.ShutdownTimeout.
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := Start(ctx, cfg)
	if err != nil {
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	case serveErr = <-app.Done():
		log.Error().Err(serveErr).Msg("HTTP server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(shutdownCtx); err != nil {
		return err
	}
	return serveErr
}
