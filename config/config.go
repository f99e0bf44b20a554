package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBUrl       string
	Environment string
	Port        string

	// Comma-separated list of origins allowed by the CORS middleware.
	CORSAllowedOrigins string

	// Mailer settings. Provider "ses" requires the AWS fields; anything
	// else falls back to the no-op mailer.
	MailProvider       string
	MailFromAddress    string
	MailFromName       string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production. We don't return an error here
	// because in production .env might not exist and we rely on system
	// environment variables.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		DBUrl:              os.Getenv("DATABASE_URL"),
		Port:               os.Getenv("PORT"),
		CORSAllowedOrigins: os.Getenv("CORS_ALLOWED_ORIGINS"),
		MailProvider:       os.Getenv("MAIL_PROVIDER"),
		MailFromAddress:    os.Getenv("MAIL_FROM_ADDRESS"),
		MailFromName:       os.Getenv("MAIL_FROM_NAME"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}

	// The connection string has no sensible default: a missing value must
	// abort startup rather than surface as a connect error on first use.
	if cfg.DBUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MailProvider == "" {
		cfg.MailProvider = "noop"
	}

	return cfg, nil
}
