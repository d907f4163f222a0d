// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/taibuivan/mangagraph/internal/platform/sparql"
)

const (
	narutoURI = "http://dbpedia.org/resource/Naruto"
	ookuURI   = "http://dbpedia.org/resource/Ōoku:_The_Inner_Chambers"
)

var errEndpointDown = errors.New("endpoint down")

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// rule answers every query containing all of its fragments.
type rule struct {
	match []string
	rows  []sparql.Row
	err   error
}

// fakeQuerier is an in-memory [Querier] routing queries by substring.
// Unmatched queries return no rows.
type fakeQuerier struct {
	mu      sync.Mutex
	rules   []rule
	queries []string
}

func (fake *fakeQuerier) on(rows []sparql.Row, err error, match ...string) *fakeQuerier {
	fake.rules = append(fake.rules, rule{match: match, rows: rows, err: err})
	return fake
}

func (fake *fakeQuerier) Execute(ctx context.Context, query string, _ ...sparql.Option) ([]sparql.Row, error) {
	fake.mu.Lock()
	fake.queries = append(fake.queries, query)
	rules := fake.rules
	fake.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, candidate := range rules {
		if containsAll(query, candidate.match) {
			return candidate.rows, candidate.err
		}
	}
	return nil, nil
}

func (fake *fakeQuerier) count(fragment string) int {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	total := 0
	for _, query := range fake.queries {
		if strings.Contains(query, fragment) {
			total++
		}
	}
	return total
}

func containsAll(query string, fragments []string) bool {
	for _, fragment := range fragments {
		if !strings.Contains(query, fragment) {
			return false
		}
	}
	return true
}

// Fragments identifying each query family.
const (
	discoveryMarker   = "SELECT DISTINCT ?manga WHERE"
	descriptionMarker = "dbo:abstract ?description"
	labelsMarker      = "SELECT DISTINCT ?label WHERE"
)

func attributeMarker(kind AttributeKind) string {
	return kind.Predicate() + " ?" + kind.uriVar()
}

// narutoGraph wires a complete entity: discovery, description and a few attributes.
func narutoGraph() *fakeQuerier {
	fake := &fakeQuerier{}
	fake.on([]sparql.Row{sparql.NewRow(varManga, narutoURI)}, nil, discoveryMarker, "naruto")
	fake.on([]sparql.Row{sparql.NewRow(
		varTitleEnglish, "Naruto (manga)",
		varTitleKanji, "ナルト",
		varDescription, "Naruto is a Japanese manga series.",
		varNumberOfVolumes, "72",
		varFirstPublicationDate, "1999-09-21",
		varLastPublicationDate, "November 10, 2014",
	)}, nil, descriptionMarker, "<"+narutoURI+">")
	fake.on([]sparql.Row{sparql.NewRow(
		"author_URI", "http://dbpedia.org/resource/Masashi_Kishimoto",
		"author_label", "Masashi Kishimoto",
	)}, nil, attributeMarker(KindAuthor), "<"+narutoURI+">")
	fake.on([]sparql.Row{
		sparql.NewRow("genre_URI", "http://dbpedia.org/resource/Adventure_fiction", "genre_label", "Adventure (genre)"),
		sparql.NewRow("genre_URI", "http://dbpedia.org/resource/Martial_arts", "genre_label", "Martial arts"),
	}, nil, attributeMarker(KindGenre), "<"+narutoURI+">")
	fake.on([]sparql.Row{
		sparql.NewRow("publisher_URI", "http://dbpedia.org/resource/Shueisha"),
	}, nil, attributeMarker(KindPublisher), "<"+narutoURI+">")
	return fake
}
