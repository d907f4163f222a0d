// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/taibuivan/mangagraph/internal/platform/ctxutil"
	"github.com/taibuivan/mangagraph/internal/platform/metrics"
	"github.com/taibuivan/mangagraph/internal/platform/sparql"
	"github.com/taibuivan/mangagraph/pkg/fanout"
	"github.com/taibuivan/mangagraph/pkg/pointer"
	"github.com/taibuivan/mangagraph/pkg/slice"
)

// # Entity Assembler

// Assembler builds one [Manga] record from a single entity identifier.
type Assembler struct {
	querier  Querier
	resolver *Resolver
	options  fanout.Options
	metrics  *metrics.Metrics
}

// NewAssembler constructs an [Assembler].
//
// attributePolicy decides what a failed attribute lookup does to the record:
// [fanout.CollectPartial] drops the field, [fanout.FailFast] fails the record.
func NewAssembler(querier Querier, attributePolicy fanout.Policy, limit int, m *metrics.Metrics) *Assembler {
	return &Assembler{
		querier:  querier,
		resolver: NewResolver(querier),
		options:  fanout.Options{Policy: attributePolicy, Limit: limit},
		metrics:  m,
	}
}

/*
Assemble issues the description query for id, fans out one attribute lookup per
kind, and merges everything into a record.

Description: A missing description row is not an error; the record is then
built from attributes alone. The eight attribute lookups run concurrently and
the merge waits for all of them.

Parameters:
  - ctx: context.Context
  - id: EntityID (Validated resource URI)

Returns:
  - *Manga: The assembled record, always carrying Source and SourceURL
  - error: Description query failure, or attribute failure under fail-fast
*/
func (assembler *Assembler) Assemble(ctx context.Context, id EntityID) (*Manga, error) {
	rows, err := assembler.querier.Execute(ctx, BuildDescriptionQuery(id))
	if err != nil {
		return nil, fmt.Errorf("catalog: describe %s: %w", id, err)
	}

	manga := &Manga{}
	if len(rows) > 0 {
		applyDescription(manga, rows[0])
	}

	results, err := fanout.Run(ctx, len(AttributeKinds), assembler.options,
		func(branchCtx context.Context, index int) ([]Attribute, error) {
			return assembler.resolver.Resolve(branchCtx, id, AttributeKinds[index])
		})
	if err != nil {
		return nil, err
	}

	// Branches of a cancelled join fail with the context error; that is not
	// an absent attribute, so the record is abandoned instead of degraded.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("catalog: assemble %s: %w", id, err)
	}

	logger := ctxutil.GetLogger(ctx)
	for index, result := range results {
		kind := AttributeKinds[index]
		if result.Err != nil {
			assembler.metrics.RecordDegraded(string(kind))
			logger.WarnContext(ctx, "attribute_degraded",
				slog.String("entity", id.String()),
				slog.String("kind", string(kind)),
				slog.Any("error", result.Err),
			)
			continue
		}

		labels := slice.Map(result.Value, func(attribute Attribute) string { return attribute.Label })
		if kind == KindGenre {
			labels = slice.Map(labels, StripGenreSuffix)
		}
		manga.setAttribute(kind, labels)
	}

	manga.Source = SourceName
	manga.SourceURL = id.String()

	assembler.metrics.RecordAssembled()
	return manga, nil
}

// applyDescription copies the scalar fields of the description row.
func applyDescription(manga *Manga, row sparql.Row) {
	if title := row.Value(varTitleEnglish); title != "" {
		manga.TitleEnglish = pointer.To(StripTitleSuffix(title))
	}
	if romaji := row.Value(varTitleRomaji); romaji != "" {
		manga.TitleRomaji = pointer.To(romaji)
	}
	if kanji := row.Value(varTitleKanji); kanji != "" {
		manga.TitleKanji = pointer.To(kanji)
	}
	if description := row.Value(varDescription); description != "" {
		manga.Description = pointer.To(description)
	}
	if volumes, err := strconv.Atoi(strings.TrimSpace(row.Value(varNumberOfVolumes))); err == nil {
		manga.NumberOfVolumes = pointer.To(volumes)
	}
	if date, ok := ParseDate(row.Value(varFirstPublicationDate)); ok {
		manga.FirstPublicationDate = date
	}
	if date, ok := ParseDate(row.Value(varLastPublicationDate)); ok {
		manga.LastPublicationDate = date
	}
}
