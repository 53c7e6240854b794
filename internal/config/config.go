// Package config handles loading and validating application configuration.
// It supports two sources, in priority order:
//  1. A YAML file given with --config or CONFIG_PATH (env vars still override it)
//  2. Environment variables only, optionally seeded from a .env file
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	// Loads a .env file from the working directory into the process
	// environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure. Every field maps to a key
// in the YAML file and can be overridden by the env var named in its tag.
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	HTTPServer `yaml:"http_server"`

	Storage StorageConfig `yaml:"storage"`
	Mongo   MongoConfig   `yaml:"mongo"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	Port         string        `yaml:"port" env:"PORT" env-default:"5000" validate:"required,numeric"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*" validate:"min=1"`

	// BodyLimit caps request bodies, in echo's size notation ("100K", "2M").
	BodyLimit string `yaml:"body_limit" env:"HTTP_BODY_LIMIT" env-default:"100K"`
}

// Addr is the TCP address the server listens on.
func (h HTTPServer) Addr() string {
	return ":" + h.Port
}

// StorageConfig selects the document store backend.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo" validate:"oneof=mongo sqlite"`

	// Path is the SQLite database file, used only by the sqlite driver.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"storage/students.db"`
}

// MongoConfig holds the cluster credentials. Either URI or Cluster must be
// set when the mongo driver is selected.
type MongoConfig struct {
	URI      string `yaml:"uri" env:"DB_URI"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASS"`
	Cluster  string `yaml:"cluster" env:"DB_CLUSTER"`

	Database   string `yaml:"database" env:"DB_NAME" env-default:"simple-student-crud" validate:"required"`
	Collection string `yaml:"collection" env:"DB_COLLECTION" env-default:"students" validate:"required"`

	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT" env-default:"10s"`
}

// ConnectionURI returns URI when set, otherwise an SRV connection string
// built from the credentials and cluster host.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		Host:     m.Cluster,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	if m.User != "" {
		u.User = url.UserPassword(m.User, m.Password)
	}
	return u.String()
}

var ErrMissingCluster = errors.New("mongo driver requires DB_URI or DB_CLUSTER")

// Load reads the config file at path (when non-empty) and the environment,
// then validates the result. An empty path falls back to CONFIG_PATH.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and the cross-field storage rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.Storage.Driver == DriverMongo && c.Mongo.URI == "" && c.Mongo.Cluster == "" {
		return ErrMissingCluster
	}
	return nil
}
