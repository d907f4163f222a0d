// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/mangagraph/internal/platform/apperr"
	"github.com/taibuivan/mangagraph/internal/platform/metrics"
	"github.com/taibuivan/mangagraph/internal/platform/sparql"
	"github.com/taibuivan/mangagraph/internal/platform/validate"
	"github.com/taibuivan/mangagraph/pkg/fanout"
	"github.com/taibuivan/mangagraph/pkg/slice"
)

// # Request Fields

const (
	FieldMode  = "mode"
	FieldQuery = "q"
	FieldURI   = "uri"

	// MaxQueryLength bounds the free text accepted from a user.
	MaxQueryLength = 200
)

// # Service Layer

// Options tunes the search orchestration.
type Options struct {
	// MaxResults caps the candidate entities per search. Zero means [MaxResults].
	MaxResults int

	// FanoutLimit caps concurrent branches per join. Zero means unbounded.
	FanoutLimit int

	// AttributePolicy decides whether a failed attribute lookup drops the
	// field ([fanout.CollectPartial]) or fails the record ([fanout.FailFast]).
	AttributePolicy fanout.Policy
}

// Service orchestrates discovery and assembly of manga records.
// It is the entry point used by the HTTP layer.
type Service struct {
	querier    Querier
	assembler  *Assembler
	maxResults int
	fanout     fanout.Options
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewService constructs a new [Service]. The metrics argument may be nil.
func NewService(querier Querier, opts Options, logger *slog.Logger, m *metrics.Metrics) *Service {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = MaxResults
	}

	return &Service{
		querier:    querier,
		assembler:  NewAssembler(querier, opts.AttributePolicy, opts.FanoutLimit, m),
		maxResults: clampLimit(maxResults),
		fanout:     fanout.Options{Policy: fanout.FailFast, Limit: opts.FanoutLimit},
		logger:     logger,
		metrics:    m,
	}
}

// # Search

/*
Search discovers the entities matching rawInput in mode and assembles a record
for each of them.

Description: The input is sanitized, a single discovery query returns at most
MaxResults identifiers, and one assembly per identifier runs concurrently. Any
failed assembly fails the whole search. Records keep discovery order.

Parameters:
  - ctx: context.Context
  - mode: SearchMode (byName, byAuthor or byGenre)
  - rawInput: string (User text, unsanitized)

Returns:
  - []*Manga: Records in discovery order; empty when nothing matched
  - error: VALIDATION_ERROR for bad input, UPSTREAM_ERROR for endpoint failures
*/
func (service *Service) Search(ctx context.Context, mode SearchMode, rawInput string) ([]*Manga, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldMode, string(mode), modeNames()...)
	validator.Required(FieldQuery, rawInput).MaxLen(FieldQuery, rawInput, MaxQueryLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	records, err := service.search(ctx, mode, SanitizeFreeText(strings.TrimSpace(rawInput)))
	service.metrics.RecordSearch(string(mode), err)
	if err != nil {
		return nil, upstreamError(err)
	}
	return records, nil
}

func (service *Service) search(ctx context.Context, mode SearchMode, sanitized string) ([]*Manga, error) {
	ids, err := service.discover(ctx, mode, sanitized)
	if err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "discovery_finished",
		slog.String("mode", string(mode)),
		slog.String("input", sanitized),
		slog.Int("candidates", len(ids)),
	)

	results, err := fanout.Run(ctx, len(ids), service.fanout,
		func(branchCtx context.Context, index int) (*Manga, error) {
			return service.assembler.Assemble(branchCtx, ids[index])
		})
	if err != nil {
		return nil, err
	}

	return fanout.Values(results), nil
}

// discover runs the discovery query and returns the distinct, valid
// identifiers it produced, never more than maxResults.
func (service *Service) discover(ctx context.Context, mode SearchMode, sanitized string) ([]EntityID, error) {
	rows, err := service.querier.Execute(ctx, BuildDiscoveryQuery(mode, sanitized, service.maxResults))
	if err != nil {
		return nil, err
	}

	ids := make([]EntityID, 0, len(rows))
	seen := make(map[EntityID]struct{}, len(rows))
	for _, row := range rows {
		if len(ids) == service.maxResults {
			break
		}

		id, err := ParseEntityID(row.Value(varManga))
		if err != nil {
			service.logger.WarnContext(ctx, "discovery_identifier_skipped", slog.Any("error", err))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// # Direct Lookup

/*
SearchByIdentifier assembles the record of one known entity, skipping discovery.

Parameters:
  - ctx: context.Context
  - rawID: string (Resource URI, with or without angle brackets)

Returns:
  - *Manga: The assembled record
  - error: VALIDATION_ERROR for a malformed URI, UPSTREAM_ERROR for endpoint failures
*/
func (service *Service) SearchByIdentifier(ctx context.Context, rawID string) (*Manga, error) {
	if err := (&validate.Validator{}).Required(FieldURI, rawID).Err(); err != nil {
		return nil, err
	}

	id, err := ParseEntityID(rawID)
	if err != nil {
		return nil, apperr.ValidationError("Invalid resource URI", apperr.FieldError{
			Field:   FieldURI,
			Message: "Must be an absolute http(s) resource URI",
		})
	}

	manga, err := service.assembler.Assemble(ctx, id)
	if err != nil {
		return nil, upstreamError(err)
	}
	return manga, nil
}

// # Autocompletion

// Labels returns the distinct display labels available for mode, in result
// order, with blank entries dropped.
func (service *Service) Labels(ctx context.Context, mode SearchMode) ([]string, error) {
	if err := (&validate.Validator{}).OneOf(FieldMode, string(mode), modeNames()...).Err(); err != nil {
		return nil, err
	}

	rows, err := service.querier.Execute(ctx, BuildLabelsQuery(mode))
	if err != nil {
		return nil, upstreamError(err)
	}

	labels := slice.Map(rows, func(row sparql.Row) string { return strings.TrimSpace(row.Value(varLabel)) })
	labels = slice.Unique(slice.Filter(labels, func(label string) bool { return label != "" }))
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}

// # Helpers

func modeNames() []string {
	names := make([]string, len(SearchModes))
	for i, mode := range SearchModes {
		names[i] = string(mode)
	}
	return names
}

// upstreamError converts anything that is not already an [apperr.AppError]
// into a 502, keeping context cancellation distinguishable through Unwrap.
func upstreamError(err error) error {
	var appError *apperr.AppError
	if errors.As(err, &appError) {
		return err
	}
	return apperr.BadGateway(err)
}
