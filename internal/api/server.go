// Package api implements the colign HTTP service.
//
// The service exposes the alignment pipeline over JSON: clients POST a
// document and options, and receive the aligned document together with
// the shift report. A check variant answers whether a document is
// already aligned without returning the full document.
//
// # Endpoints
//
//   - POST /v1/align  - run the pipeline, return the aligned document
//   - POST /v1/check  - dry run, report whether the document is aligned
//   - GET  /healthz   - liveness probe with build information
//
// Errors are returned as {"error": {"code", "message"}} with the code
// taken from pkg/errors, so CLI and API clients share one vocabulary.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/colign/pkg/pipeline"
)

// Server wires the alignment runner into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router *chi.Mux
}

// NewServer creates a server around the given runner.
// A nil logger falls back to log.Default().
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/align", s.handleAlign)
		r.Post("/check", s.handleCheck)
	})
}

// Handler returns the server's HTTP handler, primarily for tests and
// embedding into a larger mux.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully with a short drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
