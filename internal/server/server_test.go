package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/student-records-api/internal/config"
	"github.com/aanand-mishra/student-records-api/internal/storage/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:        "dev",
		HTTPServer: config.HTTPServer{Port: "0"},
		Storage: config.StorageConfig{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "students.db"),
		},
	}
}

func TestNew_SQLite(t *testing.T) {
	logger := zerolog.Nop()

	s, err := New(context.Background(), sqliteConfig(t), &logger)
	require.NoError(t, err)

	assert.IsType(t, &sqlite.SQLite{}, s.Storage)
	assert.NoError(t, s.Storage.Ping(context.Background()))
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestNew_UnknownDriver(t *testing.T) {
	logger := zerolog.Nop()
	cfg := sqliteConfig(t)
	cfg.Storage.Driver = "postgres"

	s, err := New(context.Background(), cfg, &logger)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestStart_WithoutHTTPServer(t *testing.T) {
	logger := zerolog.Nop()
	s, err := New(context.Background(), sqliteConfig(t), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Shutdown(context.Background()) })

	assert.Error(t, s.Start())
}

func TestSetupHTTPServer(t *testing.T) {
	logger := zerolog.Nop()
	s, err := New(context.Background(), sqliteConfig(t), &logger)
	require.NoError(t, err)

	s.SetupHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	require.NotNil(t, s.httpServer)
	assert.Equal(t, ":0", s.httpServer.Addr)

	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)

	assert.NoError(t, s.Shutdown(context.Background()))
}
