package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const envPrefix = "MEALBOOK"

// Config holds all configuration for the application
type Config struct {
	Environment Environment `ignored:"true"`

	// Server configuration
	ServerHost      string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ServerPort      string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://frontend:5173"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`

	// Database configuration. DBDriver is postgres or sqlite.
	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"mealbook"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"mealbook.db"`

	// Redis configuration. Leaving both RedisURL and RedisHost empty
	// disables upload rate limiting.
	RedisURL      string `envconfig:"REDIS_URL"`
	RedisHost     string `envconfig:"REDIS_HOST"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	UploadRateLimit  int           `envconfig:"UPLOAD_RATE_LIMIT" default:"30"`
	UploadRateWindow time.Duration `envconfig:"UPLOAD_RATE_WINDOW" default:"1h"`

	// Object storage for recipe images and meal log photos
	S3Bucket       string `envconfig:"S3_BUCKET" default:"mealbook-images"`
	S3Region       string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Endpoint     string `envconfig:"S3_ENDPOINT"`
	S3PublicURL    string `envconfig:"S3_PUBLIC_URL"`
	S3UsePathStyle bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`

	// UI preferences handed to the frontend
	Theme  string `envconfig:"THEME" default:"orange"`
	Glassy bool   `envconfig:"GLASSY" default:"false"`
}

// secretFiles maps Docker secret names to the field they populate.
var secretFiles = map[string]func(*Config) *string{
	"db_password":    func(c *Config) *string { return &c.DBPassword },
	"redis_password": func(c *Config) *string { return &c.RedisPassword },
	"redis_url":      func(c *Config) *string { return &c.RedisURL },
}

// LoadConfig reads the MEALBOOK_* environment, overlays Docker secrets outside
// CI, and validates the result.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	cfg.Environment = GetEnvironment()

	// CI takes secrets from environment variables only
	if cfg.Environment != CI {
		loadSecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Str("addr", cfg.Addr()).
		Bool("rate_limit", cfg.RedisEnabled()).
		Str("s3_bucket", cfg.S3Bucket).
		Msg("Configuration loaded")

	return cfg, nil
}

// loadSecrets fills empty secret fields from files under SECRETS_DIR.
// A missing file leaves the field unchanged.
func loadSecrets(cfg *Config) {
	for name, field := range secretFiles {
		target := field(cfg)
		if *target != "" {
			continue
		}
		if value := readSecret(name); value != "" {
			*target = value
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN returns the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// PostgresURL returns the postgres:// form used by database/sql tooling
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// RedisEnabled reports whether a Redis server is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}
