package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// Session tokens. No default secret: the process refuses to start
	// without one.
	JWTSecret   string `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTTTLHours int    `env:"JWT_TTL_HOURS" envDefault:"168" validate:"min=1"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`

	// BackendURL is the base for verification links in outbound email;
	// FrontendURL is where verified browsers get redirected.
	BackendURL  string `env:"BACKEND_URL"  envDefault:"http://localhost:8080" validate:"required,url"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5174" validate:"required,url"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"disk" validate:"oneof=disk s3"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxUploadMB    int64  `env:"MAX_UPLOAD_MB" envDefault:"12" validate:"min=1"`

	S3Region          string `env:"S3_REGION" validate:"required_if=StorageBackend s3"`
	S3Bucket          string `env:"S3_BUCKET" validate:"required_if=StorageBackend s3"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
