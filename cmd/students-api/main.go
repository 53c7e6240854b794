// main is the entry point of the Student Records API.
//
// Startup sequence:
//  1. Load configuration (YAML file and/or environment)
//  2. Initialise the logger
//  3. Connect to the document store
//  4. Build the router and the HTTP server
//  5. Serve until SIGINT/SIGTERM, then shut down gracefully
//
// Running the server:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or, with environment variables only (a .env file is picked up too):
//
//	DB_USER=... DB_PASS=... DB_CLUSTER=... go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-records-api/internal/config"
	"github.com/aanand-mishra/student-records-api/internal/logger"
	"github.com/aanand-mishra/student-records-api/internal/router"
	"github.com/aanand-mishra/student-records-api/internal/server"
	"github.com/spf13/cobra"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 5 * time.Second
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "students-api",
		Short:        "Paginated CRUD API over a collection of student records",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "",
		"path to the configuration YAML file (defaults to $CONFIG_PATH, then environment only)")

	return cmd
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Env)
	log.Info().Str("version", version).Msg("starting students-api")

	srv, err := server.New(ctx, cfg, &log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialise server")
		return err
	}

	srv.SetupHTTPServer(router.New(srv))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server encountered an error")
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server gracefully")
		return err
	}

	log.Info().Msg("server stopped gracefully")
	return nil
}
