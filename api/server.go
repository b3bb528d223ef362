// Package api exposes the generation pipeline over HTTP.
//
// Routes:
//
//	POST /generate  {prompt | description, issue_key?, summary?, issue_type?, status?}
//	GET  /health
//	GET  /metrics
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mario1918/TestCaseGenie/generator"
)

// maxRequestBodySize limits POST body sizes to prevent DoS.
const maxRequestBodySize = 1 << 20 // 1 MB

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Generator runs the generation pipeline. *generator.Service satisfies it.
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string

	// CORSOrigin is sent as Access-Control-Allow-Origin. Empty means "*".
	CORSOrigin string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Logger *slog.Logger
}

// Server is the request gateway.
type Server struct {
	gen     Generator
	opts    Options
	metrics *metrics
	logger  *slog.Logger
	handler http.Handler
}

// NewServer creates a gateway in front of gen.
func NewServer(gen Generator, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		gen:     gen,
		opts:    opts,
		metrics: newMetrics(),
		logger:  logger,
	}

	mux := http.NewServeMux()
	s.RegisterHTTPHandlers(mux)
	s.handler = withRequestID(logger, withCORS(opts.CORSOrigin, mux))
	return s
}

// RegisterHTTPHandlers registers the gateway routes on mux.
func (s *Server) RegisterHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.opts.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Gateway listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
