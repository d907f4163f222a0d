// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sparql is the only I/O boundary between mangagraph and the knowledge graph.

It sends a query string to a SPARQL-over-HTTP endpoint, asks for the JSON result
format, and reshapes the nested binding sets into flat [Row] values.

Core Responsibilities:

  - Single Shot: One [Client.Execute] call is exactly one HTTP request. No retry.
  - Failure Reporting: Transport errors, non-2xx statuses and undecodable bodies
    all wrap [ErrEndpoint] and carry no partial result.
  - Politeness: Outbound traffic passes a token bucket so a wide fan-out cannot
    flood the public endpoint.
*/
package sparql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/mangagraph/internal/platform/ctxutil"
	"github.com/taibuivan/mangagraph/internal/platform/metrics"
)

// DefaultEndpoint is the public DBpedia SPARQL endpoint.
const DefaultEndpoint = "https://dbpedia.org/sparql"

const (
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 32 << 20

	// maxErrorSnippet caps how much of an error body ends up in the error text.
	maxErrorSnippet = 512

	resultsMediaType = "application/sparql-results+json"
)

// ErrEndpoint marks every failure to obtain a result from the endpoint.
var ErrEndpoint = errors.New("sparql: endpoint failure")

// # Client Configuration

// Config holds the connection settings of a [Client].
type Config struct {
	// Endpoint is the default endpoint URL. Empty means [DefaultEndpoint].
	Endpoint string

	// Timeout bounds one HTTP round trip. Zero means no client-side timeout.
	Timeout time.Duration

	// RateLimit is the outbound requests per second. Zero or less disables throttling.
	RateLimit float64

	// Burst is the token bucket size used with RateLimit.
	Burst int
}

// Client executes SPARQL queries over HTTP.
//
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
}

// NewClient builds a [Client]. The metrics argument may be nil.
func NewClient(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	logger.Info("sparql client configured",
		slog.String("endpoint", endpoint),
		slog.Duration("timeout", cfg.Timeout),
		slog.Float64("rate_limit_rps", cfg.RateLimit),
	)

	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		metrics:    m,
	}
}

// # Per-call Options

type callOptions struct {
	endpoint string
}

// Option customizes a single [Client.Execute] call.
type Option func(*callOptions)

// WithEndpoint sends the query to endpoint instead of the configured default.
func WithEndpoint(endpoint string) Option {
	return func(opts *callOptions) {
		opts.endpoint = endpoint
	}
}

// # Execution

// Execute sends query to the endpoint and returns its result rows.
//
// A result with no bindings yields an empty slice and a nil error.
func (c *Client) Execute(ctx context.Context, query string, opts ...Option) ([]Row, error) {
	call := callOptions{endpoint: c.endpoint}
	for _, opt := range opts {
		opt(&call)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("sparql: rate limiter: %w", err)
		}
	}

	started := time.Now()
	rows, err := c.roundTrip(ctx, call.endpoint, query)
	elapsed := time.Since(started)
	c.metrics.ObserveQuery(err, elapsed)

	logger := ctxutil.GetLogger(ctx)
	if err != nil {
		logger.WarnContext(ctx, "sparql_query_failed",
			slog.String("endpoint", call.endpoint),
			slog.Int64("latency_ms", elapsed.Milliseconds()),
			slog.Any("error", err),
		)
		return nil, err
	}

	logger.DebugContext(ctx, "sparql_query_finished",
		slog.Int("rows", len(rows)),
		slog.Int64("latency_ms", elapsed.Milliseconds()),
	)
	return rows, nil
}

// Ping verifies that the endpoint answers an empty ASK query.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.Execute(ctx, "ASK {}"); err != nil {
		return fmt.Errorf("sparql: ping failed: %w", err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, endpoint, query string) ([]Row, error) {
	target, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint %q: %w", ErrEndpoint, endpoint, err)
	}

	params := target.Query()
	params.Set("query", query)
	params.Set("format", "json")
	target.RawQuery = params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrEndpoint, err)
	}
	request.Header.Set("Accept", resultsMediaType)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: request: %w", ErrEndpoint, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrEndpoint, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrEndpoint, response.StatusCode, snippet(body))
	}

	return decode(body)
}

// # Response Decoding

// resultDocument is the SPARQL 1.1 Query Results JSON shape.
type resultDocument struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results *struct {
		Bindings []map[string]binding `json:"bindings"`
	} `json:"results"`
	Boolean *bool `json:"boolean"`
}

type binding struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

func decode(body []byte) ([]Row, error) {
	var document resultDocument
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrEndpoint, err)
	}

	// ASK results carry a boolean and no bindings.
	if document.Results == nil {
		if document.Boolean != nil {
			return []Row{}, nil
		}
		return nil, fmt.Errorf("%w: decode: response has neither results nor boolean", ErrEndpoint)
	}

	rows := make([]Row, 0, len(document.Results.Bindings))
	for _, set := range document.Results.Bindings {
		rows = append(rows, flatten(document.Head.Vars, set))
	}
	return rows, nil
}

// flatten orders a binding set by the declared variables, then appends any
// undeclared names alphabetically so the order stays deterministic.
func flatten(vars []string, set map[string]binding) Row {
	var row Row
	for _, name := range vars {
		if value, ok := set[name]; ok {
			row.set(name, value.Value)
		}
	}

	var extra []string
	for name := range set {
		if !slices.Contains(vars, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		row.set(name, set[name].Value)
	}

	return row
}

func snippet(body []byte) string {
	if len(body) > maxErrorSnippet {
		return string(body[:maxErrorSnippet]) + "…"
	}
	return string(body)
}
