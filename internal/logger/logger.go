// Package logger builds the application's zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger configured for the given environment.
//
// dev (and anything unrecognised): human-readable console output at DEBUG.
// staging: JSON at DEBUG.
// prod: JSON at INFO, which log aggregators ingest directly.
func New(env string) zerolog.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(env string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var base zerolog.Logger
	switch env {
	case "prod":
		base = zerolog.New(w).Level(zerolog.InfoLevel)
	case "staging":
		base = zerolog.New(w).Level(zerolog.DebugLevel)
	default:
		base = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
			Level(zerolog.DebugLevel)
	}

	return base.With().
		Timestamp().
		Str("service", "students-api").
		Str("env", env).
		Logger()
}
