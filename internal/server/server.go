// Package server exposes the conversion pipeline over HTTP.
//
// The API is a thin wrapper: every request runs the same synchronous
// decode → extract → emit pass as the CLI, with results cached by content
// hash through the runner's cache backend.
//
// Endpoints:
//   - POST /v1/convert?format=json|toml — raw input document in the body,
//     SES text in the response
//   - POST /v1/extract?format=json|toml — canonical graph JSON in the response
//   - GET  /healthz — liveness
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	serrors "github.com/sestools/sescribe/pkg/errors"
	"github.com/sestools/sescribe/pkg/graph"
	sesio "github.com/sestools/sescribe/pkg/io"
	"github.com/sestools/sescribe/pkg/observability"
	"github.com/sestools/sescribe/pkg/pipeline"
)

const (
	// maxBodyBytes caps request bodies; graph descriptions are small.
	maxBodyBytes = 10 << 20

	// shutdownTimeout bounds graceful shutdown on context cancel.
	shutdownTimeout = 10 * time.Second
)

// Server handles HTTP conversion requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around a pipeline runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/convert", s.handleConvert)
	r.Post("/v1/extract", s.handleExtract)

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Infof("Listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	input, opts, err := s.readRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts, input)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if result.CacheInfo.Hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write([]byte(result.Text))
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	input, opts, err := s.readRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	g, err := s.runner.Extract(opts, input)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := graph.Write(g, w); err != nil {
		s.logger.Errorf("Write graph response: %v", err)
	}
}

// readRequest reads the request body and resolves the input format from
// the ?format query parameter.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) ([]byte, pipeline.Options, error) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = sesio.FormatJSON
	}
	if err := sesio.ValidateFormat(format); err != nil {
		return nil, pipeline.Options{}, err
	}

	input, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, pipeline.Options{}, serrors.Wrap(serrors.ErrCodeInvalidInput, err, "read request body")
	}
	return input, pipeline.Options{InputFormat: format, Logger: s.logger}, nil
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string       `json:"error"`
	Code  serrors.Code `json:"code,omitempty"`
}

// writeError maps structured error codes to HTTP statuses: caller
// mistakes become 400, everything else 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if serrors.IsCallerMistake(err) {
		status = http.StatusBadRequest
	}
	if status >= 500 {
		s.logger.Errorf("Request failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: serrors.UserMessage(err),
		Code:  serrors.GetCode(err),
	})
}

// logRequests logs method, path, status, and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Request().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)
		observability.Request().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debugf("%s %s %d (%s)", r.Method, r.URL.Path, ww.Status(),
			elapsed.Round(time.Millisecond))
	})
}
