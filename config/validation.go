package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var themes = map[string]bool{
	"orange": true,
	"pink":   true,
	"green":  true,
	"blue":   true,
	"purple": true,
	"teal":   true,
	"amber":  true,
}

// ValidateConfig checks cfg and reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		add("SHUTDOWN_TIMEOUT", "must be positive")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for the postgres driver")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for the postgres driver")
		}
		// Local development may run against a trust-auth database
		if cfg.DBPassword == "" && (cfg.Environment == Production || cfg.Environment == CI) {
			add("DB_PASSWORD", "is required in "+string(cfg.Environment))
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
		if cfg.Environment == Production {
			add("DB_DRIVER", "sqlite is not supported in production")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.RedisEnabled() {
		if cfg.UploadRateLimit <= 0 {
			add("UPLOAD_RATE_LIMIT", "must be positive")
		}
		if cfg.UploadRateWindow < time.Second {
			add("UPLOAD_RATE_WINDOW", "must be at least one second")
		}
	}

	if cfg.S3Bucket == "" {
		add("S3_BUCKET", "is required")
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		add("LOG_LEVEL", err.Error())
	}
	if !themes[cfg.Theme] {
		add("THEME", fmt.Sprintf("unknown theme %q", cfg.Theme))
	}

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%s", strings.Join(msgs, "\n"))
}
