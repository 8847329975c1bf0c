// package server contains the HTTP interface to the listing pipeline
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlist/internal/models"
	"github.com/desertthunder/ytlist/internal/shared"
	"github.com/desertthunder/ytlist/internal/tasks"
	"golang.org/x/time/rate"
)

const (
	shutdownTimeout = 10 * time.Second
	readTimeout     = 15 * time.Second
	defaultHistory  = 20
	maxHistory      = 500
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows which paths it serves.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Pipeline runs listing requests.
type Pipeline interface {
	Run(ctx context.Context, req tasks.ListingRequest) models.ListingResult
}

// HistoryLister returns recorded runs.
type HistoryLister interface {
	List(criteria map[string]any) ([]*models.ListingRun, error)
}

// Options configures a [Server].
type Options struct {
	Pipeline  Pipeline
	Artifacts *tasks.ArtifactStore
	History   HistoryLister // nil disables /history
	Logger    *log.Logger
	RateLimit float64 // listing requests per second; zero disables limiting
	Burst     int
}

// Server serves the listing form and API.
type Server struct {
	router    *BasicRouter
	http      *http.Server
	pipeline  Pipeline
	artifacts *tasks.ArtifactStore
	history   HistoryLister
	logger    *log.Logger
}

// New creates a server listening on addr.
func New(addr string, opts Options) (*Server, error) {
	if opts.Pipeline == nil {
		return nil, fmt.Errorf("%w: pipeline", shared.ErrMissingArgument)
	}
	if opts.Artifacts == nil {
		return nil, fmt.Errorf("%w: artifact store", shared.ErrMissingArgument)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	s := &Server{
		router:    NewBasicRouter(),
		pipeline:  opts.Pipeline,
		artifacts: opts.Artifacts,
		history:   opts.History,
		logger:    opts.Logger,
	}

	s.router.Use(Recovery(s.logger), RequestID, Logging(s.logger))

	download := http.Handler(http.HandlerFunc(s.handleDownload))
	if opts.RateLimit > 0 {
		burst := max(opts.Burst, 1)
		download = RateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), burst))(download)
	}

	s.router.Handler(newIndexHandler())
	s.router.Handle(http.MethodPost, "/download", download)
	s.router.HandleFunc(http.MethodGet, "/download_csv", s.handleDownloadCSV)
	s.router.HandleFunc(http.MethodGet, "/history", s.handleHistory)
	s.router.HandleFunc(http.MethodGet, "/health", s.handleHealth)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readTimeout,
	}
	return s, nil
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// ListenAndServe serves until ctx is done, then shuts down gracefully and releases held artifacts.
func (s *Server) ListenAndServe(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.http.Addr, "routes", s.router.Routes())
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		s.artifacts.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(shutdownCtx)
	s.artifacts.Close()
	if err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}
