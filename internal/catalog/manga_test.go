// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestParseEntityID accepts absolute http(s) URIs only.
*/
func TestParseEntityID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    EntityID
		wantErr bool
	}{
		{"plain", narutoURI, EntityID(narutoURI), false},
		{"bracketed", " <" + narutoURI + "> ", EntityID(narutoURI), false},
		{"unicode", ookuURI, EntityID(ookuURI), false},
		{"https", "https://dbpedia.org/resource/Berserk_(manga)", EntityID("https://dbpedia.org/resource/Berserk_(manga)"), false},
		{"empty", "", "", true},
		{"relative", "/resource/Naruto", "", true},
		{"other_scheme", "ftp://dbpedia.org/resource/Naruto", "", true},
		{"iri_breakout", narutoURI + "> ?p ?o . <x", "", true},
		{"whitespace", "http://dbpedia.org/resource/Naruto Shippuden", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseEntityID(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEntityID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
			assert.Equal(t, "<"+string(tt.want)+">", id.IRI())
		})
	}
}

/*
TestParseDate reads the shapes found in the graph and rejects the rest.
*/
func TestParseDate(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"1999-09-21", "1999-09-21", true},
		{"1999-09-21Z", "1999-09-21", true},
		{"1999-09-21+09:00", "1999-09-21", true},
		{"2014-11-10T00:00:00Z", "2014-11-10", true},
		{"1997-07", "1997-07-01", true},
		{"1989", "1989-01-01", true},
		{"November 10, 2014", "2014-11-10", true},
		{"10 November 2014", "2014-11-10", true},
		{"November 2014", "2014-11-01", true},
		{"present", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			date, ok := ParseDate(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, date)
				assert.Equal(t, tt.want, date.String())
			} else {
				assert.Nil(t, date)
			}
		})
	}
}

/*
TestDate_JSON encodes calendar dates only.
*/
func TestDate_JSON(t *testing.T) {
	date := Date{Time: time.Date(1999, 9, 21, 0, 0, 0, 0, time.UTC)}

	encoded, err := json.Marshal(date)
	require.NoError(t, err)
	assert.Equal(t, `"1999-09-21"`, string(encoded))

	var decoded Date
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, date.Equal(decoded.Time))

	assert.Error(t, json.Unmarshal([]byte(`"21/09/1999"`), &decoded))
}

/*
TestManga_SetAttribute is append-only and never stores empty slices.
*/
func TestManga_SetAttribute(t *testing.T) {
	manga := &Manga{}

	assert.False(t, manga.setAttribute(KindAuthor, nil))
	assert.False(t, manga.setAttribute(KindAuthor, []string{}))
	assert.Nil(t, manga.Authors)

	assert.True(t, manga.setAttribute(KindAuthor, []string{"Masashi Kishimoto"}))
	assert.False(t, manga.setAttribute(KindAuthor, []string{"Someone Else"}))
	assert.Equal(t, []string{"Masashi Kishimoto"}, manga.Attribute(KindAuthor))

	assert.False(t, manga.setAttribute(AttributeKind("colorist"), []string{"x"}))
	assert.Nil(t, manga.Attribute(AttributeKind("colorist")))
}

/*
TestManga_JSONOmitsAbsentFields keeps the output free of empty values.
*/
func TestManga_JSONOmitsAbsentFields(t *testing.T) {
	manga := &Manga{Source: SourceName, SourceURL: narutoURI}
	manga.setAttribute(KindGenre, []string{"Adventure"})

	encoded, err := json.Marshal(manga)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(encoded, &fields))
	assert.Len(t, fields, 3)
	assert.Equal(t, []any{"Adventure"}, fields["genres"])
	assert.Equal(t, SourceName, fields["source"])
	assert.Equal(t, narutoURI, fields["sourceURL"])
}

/*
TestSearchMode_Valid covers the closed set of modes.
*/
func TestSearchMode_Valid(t *testing.T) {
	for _, mode := range SearchModes {
		assert.True(t, mode.Valid(), mode)
	}
	assert.False(t, SearchMode("byStudio").Valid())
	assert.False(t, AttributeKind("").Valid())
	assert.Len(t, AttributeKinds, 8)
}
