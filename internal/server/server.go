// Package server holds the application container: the dependencies every
// handler shares and the lifecycle of the HTTP server.
//
// It owns:
//   - configuration
//   - the zerolog logger
//   - the document store handle (opened once, closed on shutdown)
//   - the Prometheus registry
//   - the *http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aanand-mishra/student-records-api/internal/config"
	"github.com/aanand-mishra/student-records-api/internal/storage"
	"github.com/aanand-mishra/student-records-api/internal/storage/mongodb"
	"github.com/aanand-mishra/student-records-api/internal/storage/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

// Server is the application container. It is not the HTTP server itself;
// it owns one, configured by SetupHTTPServer and run by Start.
type Server struct {
	Config   *config.Config
	Logger   *zerolog.Logger
	Storage  storage.Storage
	Registry *prometheus.Registry

	httpServer *http.Server
}

// New opens the configured document store and builds the container.
// The store is reachable when New returns.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Server, error) {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	logger.Info().
		Str("driver", cfg.Storage.Driver).
		Msg("storage initialised")

	return NewWithStorage(cfg, logger, store), nil
}

// NewWithStorage builds the container around an already opened store.
func NewWithStorage(cfg *config.Config, logger *zerolog.Logger, store storage.Storage) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Server{
		Config:   cfg,
		Logger:   logger,
		Storage:  store,
		Registry: reg,
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverMongo:
		db, err := mongodb.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         s.Config.HTTPServer.Addr(),
		Handler:      handler,
		ReadTimeout:  s.Config.HTTPServer.ReadTimeout,
		WriteTimeout: s.Config.HTTPServer.WriteTimeout,
		IdleTimeout:  s.Config.HTTPServer.IdleTimeout,
	}
}

// Start blocks serving HTTP until Shutdown is called, in which case it
// returns http.ErrServerClosed.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.HTTPServer.Port).
		Str("env", s.Config.Env).
		Msg("server started")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections, waits for in-flight requests until
// ctx expires, then closes the document store.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if err := s.Storage.Close(ctx); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}

	return nil
}
