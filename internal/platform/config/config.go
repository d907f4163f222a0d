// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
  - DI-Friendly: Passed to core components (SPARQL client, catalog) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Failure Policies

const (
	// PolicyDegrade turns a failed attribute lookup into an absent field.
	PolicyDegrade = "degrade"

	// PolicyFail aborts the whole record when any attribute lookup fails.
	PolicyFail = "fail"
)

// maxResultsCeiling mirrors the catalog's hard cap on discovery results.
const maxResultsCeiling = 50

// # Configuration Schema

// Config holds all runtime configuration for the mangagraph API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Knowledge graph endpoint (SPARQL over HTTP)
	SPARQLEndpoint  string        `env:"SPARQL_ENDPOINT"         envDefault:"https://dbpedia.org/sparql"`
	SPARQLTimeout   time.Duration `env:"SPARQL_TIMEOUT"          envDefault:"15s"`
	SPARQLRateLimit float64       `env:"SPARQL_RATE_LIMIT_RPS"   envDefault:"20"`
	SPARQLBurst     int           `env:"SPARQL_RATE_LIMIT_BURST" envDefault:"40"`

	// Aggregation engine
	MaxResults             int    `env:"SEARCH_MAX_RESULTS"       envDefault:"9"`
	FanoutLimit            int    `env:"FANOUT_LIMIT"             envDefault:"0"`
	AttributeFailurePolicy string `env:"ATTRIBUTE_FAILURE_POLICY" envDefault:"degrade"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values that parse correctly but cannot be used.
func (c *Config) Validate() error {
	if c.MaxResults <= 0 || c.MaxResults > maxResultsCeiling {
		return fmt.Errorf("config: SEARCH_MAX_RESULTS must be between 1 and %d, got %d", maxResultsCeiling, c.MaxResults)
	}
	if c.FanoutLimit < 0 {
		return fmt.Errorf("config: FANOUT_LIMIT must not be negative, got %d", c.FanoutLimit)
	}
	switch c.AttributeFailurePolicy {
	case PolicyDegrade, PolicyFail:
	default:
		return fmt.Errorf("config: ATTRIBUTE_FAILURE_POLICY must be %q or %q, got %q",
			PolicyDegrade, PolicyFail, c.AttributeFailurePolicy)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins splits EXTRA_ORIGINS into the list accepted by CORS outside development.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
