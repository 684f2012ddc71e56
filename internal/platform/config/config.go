// Copyright (c) 2026 ScoreHub. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Mailer) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/scorehub/scorehub/pkg/query"
)

// # Configuration Schema

// Config holds all runtime configuration for the ScoreHub API server and the
// bulk loader.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis) for refresh sessions and throttle keys
	RedisURL string `env:"REDIS_URL,required"`

	// SecretKey seeds confirmation-code derivation. Rotating it invalidates
	// every outstanding confirmation code.
	SecretKey string `env:"SECRET_KEY,required"`

	// Cryptographic keys for access-token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Outbound mail (confirmation codes). When SMTPAddr is empty, deliveries
	// are written to the log instead — the development default.
	SMTPAddr  string `env:"SMTP_ADDR"`
	FromEmail string `env:"FROM_EMAIL" envDefault:"noreply@scorehub.app"`

	// ImportPath is the directory holding the CSV resources for cmd/loader.
	ImportPath string `env:"IMPORT_PATH" envDefault:"./data/import"`

	// ExtraOrigins is a comma-separated list of additional origins allowed
	// by the CORS middleware in production.
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins parsed from EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	return query.StringSlice(c.ExtraOrigins)
}
