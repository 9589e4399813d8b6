package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stackchart/pkg/observability"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address of the serve command.
	DefaultAddr = ":8080"

	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes = 1 << 20

	// RequestTimeout bounds the handling of one request.
	RequestTimeout = 30 * time.Second
)

// Server serves the pipeline over HTTP.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	stats  *observability.Stats
	router chi.Router
}

// New creates a server around runner. A nil logger discards output. stats
// backs the /v1/stats endpoint; register it with the observability package
// to have it count events, or pass nil to disable the endpoint.
func New(runner *pipeline.Runner, logger *log.Logger, stats *observability.Stats) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{runner: runner, logger: logger, stats: stats}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/animate", s.handleAnimate)
		r.Post("/ticks", s.handleTicks)
		r.Post("/scrub", s.handleScrub)
		r.Get("/stats", s.handleStats)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
