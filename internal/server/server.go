// Package server exposes the extraction and generation agents over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vagacerta/career-agent/internal/config"
	"github.com/vagacerta/career-agent/internal/extraction"
	"github.com/vagacerta/career-agent/internal/generation"
	"github.com/vagacerta/career-agent/internal/server/ratelimit"
)

// ServiceVersion is reported by the root and health endpoints.
const ServiceVersion = "2.0.0"

// Extractor is the slice of extraction.Agent the handlers need.
type Extractor interface {
	ExtractContent(ctx context.Context, jobURL string) (*extraction.ContentResult, error)
	ExtractDetails(ctx context.Context, content, jobURL string) (*extraction.DetailsResult, error)
}

// Generator is the slice of generation.Generator the handlers need.
type Generator interface {
	Generate(ctx context.Context, req *generation.Request) (*generation.Result, error)
}

// Config wires the server's collaborators. Extractor and Generator may be
// nil when the deploy is missing its API key; the server still answers
// health checks and reports itself misconfigured.
type Config struct {
	Settings  *config.Settings
	Log       *zap.Logger
	Extractor Extractor
	Generator Generator

	// Closers are released after the HTTP server drains: the shared fetch
	// client and the model client.
	Closers []io.Closer
}

// Server is the HTTP front of the service.
type Server struct {
	httpServer *http.Server
	settings   *config.Settings
	log        *zap.Logger
	extractor  Extractor
	generator  Generator
	limiter    *ratelimit.Limiter
	validate   *validator.Validate
	closers    []io.Closer
}

// New assembles the server and its routes.
func New(cfg Config) *Server {
	s := &Server{
		settings:  cfg.Settings,
		log:       cfg.Log,
		extractor: cfg.Extractor,
		generator: cfg.Generator,
		limiter:   ratelimit.NewLimiter(ratelimit.NewConfig(cfg.Settings.MaxRequestsPerMinute)),
		validate:  validator.New(),
		closers:   cfg.Closers,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /extract-job-details", s.handleExtractJobDetails)
	mux.HandleFunc("POST /generate-materials", s.handleGenerateMaterials)
	mux.HandleFunc("POST /generate-complete", s.handleGenerateComplete)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Settings.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Settings.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until SIGINT/SIGTERM, then drains in-flight requests and
// releases the shared clients.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.limiter.Stop()
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.log.Warn("resource close failed", zap.Error(err))
		}
	}

	s.log.Info("server stopped")
	return nil
}

// configured reports whether the agents are usable on this deploy.
func (s *Server) configured() bool {
	return s.settings.IsConfigured() && s.extractor != nil && s.generator != nil
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encoding response failed", zap.Error(err))
	}
}
