// Package web serves the interactive demo page.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bachhm.dev/go-machine-learning/classification/demo"
)

// Runner executes one demo run.
type Runner interface {
	Run(opts demo.Options) (*demo.Result, error)
}

// Server is the demo HTTP server.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// NewServer returns a server listening on addr. A nil logger discards logs.
func NewServer(addr string, timeout time.Duration, runner Runner, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	h := &handlers{runner: runner, logger: logger}
	h.register(mux)

	chain := Chain(
		RecoveryMiddleware(logger),
		LoggerMiddleware(logger),
	)
	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      chain(mux),
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Addr returns the listen address.
func (s *Server) Addr() string { return s.server.Addr }

// Start serves until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting for active requests until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
