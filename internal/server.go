package internal

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"inventory-dashboard/internal/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Router  *chi.Mux
	Store   *Store
	Metrics *Metrics
	Log     zerolog.Logger
}

// NewServer wires the routes around an already loaded store.
func NewServer(cfg *config.Config, store *Store, metrics *Metrics, logger zerolog.Logger) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	s := &Server{
		Router:  chi.NewRouter(),
		Store:   store,
		Metrics: metrics,
		Log:     logger,
	}

	s.Router.Use(RequestIDMiddleware)
	s.Router.Use(AccessLogMiddleware(logger))

	// Mount metrics if enabled
	if cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	s.Router.With(CORSMiddleware(cfg.CORSOrigin)).HandleFunc("/api/inventory", s.handleInventory)

	return s
}

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	return ListenAndServe(ctx, addr, s.Router)
}

// ListenAndServe serves handler on addr until ctx is canceled and waits up to
// shutdownTimeout for in-flight requests.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	httpServer := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != http.ErrServerClosed {
		return err
	}
	return nil
}
