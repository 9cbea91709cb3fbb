// Package server hosts the account-opening form over HTTP: the rendered
// page, the form-post submission cycle, the JSON API, the form description
// and OpenAPI documents, and the static assets the page links to.
//
// The service keeps no submission state. Every submit attempt runs a fresh
// controller lifecycle, so the terminal submitted state of one request never
// blocks the next.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/goliatone/go-openaccount/components/currencies"
	"github.com/goliatone/go-openaccount/pkg/controller"
	"github.com/goliatone/go-openaccount/pkg/form"
	"github.com/goliatone/go-openaccount/pkg/renderers/vanilla"
)

// Server wires the form generator, the account-creation collaborator, and
// the route table together.
type Server struct {
	cfg       Config
	generator *form.Generator
	creator   controller.Creator
	logger    *log.Logger
	mux       *http.ServeMux

	specOnce sync.Once
	specJSON []byte
	specErr  error
}

// Option configures a Server before its routes are built.
type Option func(*Server)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithGenerator injects a pre-configured form generator.
func WithGenerator(generator *form.Generator) Option {
	return func(s *Server) {
		s.generator = generator
	}
}

// WithCreator injects the collaborator that receives accepted requests.
func WithCreator(creator controller.Creator) Option {
	return func(s *Server) {
		s.creator = creator
	}
}

// WithLogger overrides the logger used for request-level failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New builds a Server with its routes registered. Defaults: DefaultConfig,
// the standard logger, a LogCreator collaborator, and a generator themed per
// the configuration.
func New(opts ...Option) (*Server, error) {
	s := &Server{cfg: DefaultConfig()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.cfg = s.cfg.normalized()

	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.creator == nil {
		s.creator = controller.LogCreator{Logger: s.logger}
	}
	if s.generator == nil {
		var options []form.Option
		if s.cfg.Theme != "" {
			options = append(options, form.WithTheme(s.cfg.Theme, s.cfg.ThemeVariant))
		}
		s.generator = form.New(options...)
	}

	s.mux = http.NewServeMux()
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) routes() error {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/submit", s.handleSubmit)
	s.mux.HandleFunc("/api/accounts", s.handleCreateAccount)
	s.mux.HandleFunc("/api/form", s.handleDescribeForm)
	s.mux.HandleFunc("/openapi.json", s.handleOpenAPI)
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(vanilla.AssetsFS())))
	if _, err := currencies.RegisterRoutes(s.mux, ""); err != nil {
		return fmt.Errorf("server: mount currencies: %w", err)
	}
	return nil
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until the context is cancelled, then shuts down within the
// configured grace period.
func (s *Server) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	httpServer := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.mux,
	}

	s.logger.Printf("listening on %s", s.cfg.Addr)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
