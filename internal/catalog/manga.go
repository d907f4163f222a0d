// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// # Constants

const (
	// SourceName identifies the data provider on every record.
	SourceName = "DBPedia"

	// MaxResults is the default cap on candidate entities per search.
	MaxResults = 9

	// ResultCeiling is the hard cap no configuration can exceed.
	ResultCeiling = 50

	// DateLayout is the calendar-date format used in JSON output.
	DateLayout = "2006-01-02"
)

// # Search Modes

// SearchMode selects which discovery query is built for a user input.
type SearchMode string

const (
	ModeByName   SearchMode = "byName"
	ModeByAuthor SearchMode = "byAuthor"
	ModeByGenre  SearchMode = "byGenre"
)

// SearchModes lists every supported mode.
var SearchModes = []SearchMode{ModeByName, ModeByAuthor, ModeByGenre}

// Valid reports whether m is one of the supported modes.
func (m SearchMode) Valid() bool {
	switch m {
	case ModeByName, ModeByAuthor, ModeByGenre:
		return true
	}
	return false
}

// # Attribute Kinds

// AttributeKind is one of the multi-valued relations fetched per entity.
type AttributeKind string

const (
	KindAuthor      AttributeKind = "author"
	KindMagazine    AttributeKind = "magazine"
	KindPublisher   AttributeKind = "publisher"
	KindDirector    AttributeKind = "director"
	KindProducer    AttributeKind = "producer"
	KindStudio      AttributeKind = "studio"
	KindDemographic AttributeKind = "demographic"
	KindGenre       AttributeKind = "genre"
)

// AttributeKinds is the closed set of kinds, in merge order.
var AttributeKinds = []AttributeKind{
	KindAuthor,
	KindMagazine,
	KindPublisher,
	KindDirector,
	KindProducer,
	KindStudio,
	KindDemographic,
	KindGenre,
}

// Valid reports whether k belongs to the closed set.
func (k AttributeKind) Valid() bool {
	switch k {
	case KindAuthor, KindMagazine, KindPublisher, KindDirector,
		KindProducer, KindStudio, KindDemographic, KindGenre:
		return true
	}
	return false
}

// Predicate returns the graph predicate for the kind.
//
// The ontology namespace (dbo) only covers author, magazine and publisher; the
// rest live in the raw infobox namespace (dbp).
func (k AttributeKind) Predicate() string {
	switch k {
	case KindAuthor, KindMagazine, KindPublisher:
		return "dbo:" + string(k)
	default:
		return "dbp:" + string(k)
	}
}

// Field returns the pluralized output field name.
func (k AttributeKind) Field() string {
	return string(k) + "s"
}

// uriVar and labelVar name the query variables used for the kind.
func (k AttributeKind) uriVar() string   { return string(k) + "_URI" }
func (k AttributeKind) labelVar() string { return string(k) + "_label" }

// Attribute is one resolved value of an attribute kind.
type Attribute struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// # Entity Identifier

// EntityID is the resource URI of one graph node, without angle brackets.
type EntityID string

// IRI returns the identifier in SPARQL IRI syntax.
func (id EntityID) IRI() string {
	return "<" + string(id) + ">"
}

// String returns the bare resource URI.
func (id EntityID) String() string {
	return string(id)
}

// ErrInvalidEntityID is returned by [ParseEntityID] for unusable identifiers.
var ErrInvalidEntityID = errors.New("catalog: invalid entity identifier")

// ParseEntityID validates a resource URI for interpolation into a query.
//
// Surrounding angle brackets are accepted and removed. The result must be an
// absolute http(s) URI free of characters that would end the IRI early.
func ParseEntityID(raw string) (EntityID, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "<"), ">")

	if trimmed == "" || strings.ContainsAny(trimmed, "<>\"{}|^`\\ \t\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntityID, raw)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntityID, raw)
	}

	return EntityID(trimmed), nil
}

// # Dates

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// dateLayouts are tried in order by [ParseDate].
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02Z07:00",
	time.RFC3339,
	"2006-01",
	"2006",
	"January 2, 2006",
	"2 January 2006",
	"January 2006",
}

// ParseDate parses a raw textual date. It reports false for anything it
// cannot read; malformed dates are treated as absent, never as errors.
func ParseDate(raw string) (*Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			y, m, d := parsed.Date()
			return &Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, true
		}
	}
	return nil, false
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return fmt.Errorf("catalog: invalid date %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}

// # Manga Record

// Manga is the normalized record assembled for one graph entity.
//
// Every optional field is either set to a meaningful value or omitted. The
// multi-valued fields are never present as empty slices.
type Manga struct {
	TitleEnglish *string `json:"titleEnglish,omitempty"`
	TitleRomaji  *string `json:"titleRomaji,omitempty"`
	TitleKanji   *string `json:"titleKanji,omitempty"`
	Description  *string `json:"description,omitempty"`

	Authors      []string `json:"authors,omitempty"`
	Magazines    []string `json:"magazines,omitempty"`
	Publishers   []string `json:"publishers,omitempty"`
	Directors    []string `json:"directors,omitempty"`
	Producers    []string `json:"producers,omitempty"`
	Studios      []string `json:"studios,omitempty"`
	Demographics []string `json:"demographics,omitempty"`
	Genres       []string `json:"genres,omitempty"`

	FirstPublicationDate *Date `json:"firstPublicationDate,omitempty"`
	LastPublicationDate  *Date `json:"lastPublicationDate,omitempty"`
	NumberOfVolumes      *int  `json:"numberOfVolumes,omitempty"`

	Source    string `json:"source"`
	SourceURL string `json:"sourceURL"`
}

// Attribute returns the values stored for kind, or nil.
func (m *Manga) Attribute(kind AttributeKind) []string {
	if field := m.attributeField(kind); field != nil {
		return *field
	}
	return nil
}

// setAttribute writes the values of one kind. Empty input and already
// written fields are left untouched, so merges are append-only.
func (m *Manga) setAttribute(kind AttributeKind, values []string) bool {
	field := m.attributeField(kind)
	if field == nil || len(values) == 0 || *field != nil {
		return false
	}
	*field = values
	return true
}

func (m *Manga) attributeField(kind AttributeKind) *[]string {
	switch kind {
	case KindAuthor:
		return &m.Authors
	case KindMagazine:
		return &m.Magazines
	case KindPublisher:
		return &m.Publishers
	case KindDirector:
		return &m.Directors
	case KindProducer:
		return &m.Producers
	case KindStudio:
		return &m.Studios
	case KindDemographic:
		return &m.Demographics
	case KindGenre:
		return &m.Genres
	}
	return nil
}
