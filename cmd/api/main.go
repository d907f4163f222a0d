// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the mangagraph HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the Prometheus registry.
//  4. Build the SPARQL client and probe the endpoint (non-fatal).
//  5. Wire the catalog service and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/mangagraph/internal/api"
	"github.com/taibuivan/mangagraph/internal/catalog"
	"github.com/taibuivan/mangagraph/internal/platform/config"
	"github.com/taibuivan/mangagraph/internal/platform/constants"
	"github.com/taibuivan/mangagraph/internal/platform/metrics"
	"github.com/taibuivan/mangagraph/internal/platform/sparql"
	"github.com/taibuivan/mangagraph/pkg/fanout"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[mangagraph] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Int("max_results", cfg.MaxResults),
		slog.String("attribute_failure_policy", cfg.AttributeFailurePolicy),
	)

	// Root context for background workers (rate limiter cleanup).
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Metrics ────────────────────────────────────────────────────────
	registry := metrics.New()

	// ── 4. SPARQL Client ──────────────────────────────────────────────────
	client := sparql.NewClient(sparql.Config{
		Endpoint:  cfg.SPARQLEndpoint,
		Timeout:   cfg.SPARQLTimeout,
		RateLimit: cfg.SPARQLRateLimit,
		Burst:     cfg.SPARQLBurst,
	}, log, registry)

	// The public endpoint is flaky; an unreachable endpoint is reported by
	// /ready instead of blocking startup.
	probeCtx, probeCancel := context.WithTimeout(rootCtx, constants.ReadinessTimeout)
	if err := client.Ping(probeCtx); err != nil {
		log.Warn("sparql_endpoint_unreachable", slog.Any("error", err))
	}
	probeCancel()

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckEndpoint: client.Ping,
	}, log)

	service := catalog.NewService(client, catalog.Options{
		MaxResults:      cfg.MaxResults,
		FanoutLimit:     cfg.FanoutLimit,
		AttributePolicy: attributePolicy(cfg.AttributeFailurePolicy),
	}, log, registry)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(service),
		Metrics:   registry.Handler(),
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// attributePolicy maps the configured failure policy onto the fan-out policy.
func attributePolicy(name string) fanout.Policy {
	if name == config.PolicyFail {
		return fanout.FailFast
	}
	return fanout.CollectPartial
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
