// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestSanitizeFreeText covers lower-casing and the five macron folds.
*/
func TestSanitizeFreeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Naruto", "naruto"},
		{"leading_macron", "Ōoku", "ooku"},
		{"all_vowels", "āēīōū ĀĒĪŌŪ", "aeiou aeiou"},
		{"already_clean", "ooku", "ooku"},
		{"other_accents_kept", "Pokémon", "pokémon"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFreeText(tt.input))
		})
	}

	assert.Equal(t, SanitizeFreeText("Ōoku"), SanitizeFreeText("ooku"))
	assert.Equal(t, SanitizeFreeText("Shōnen"), SanitizeFreeText(SanitizeFreeText("Shōnen")))
}

/*
TestLowerAndFold_MatchesTransformer keeps the rune-wise path equivalent to the chain.
*/
func TestLowerAndFold_MatchesTransformer(t *testing.T) {
	for _, input := range []string{"Ōoku", "ooku", "āēīōū ĀĒĪŌŪ", "Shōnen Jump", "Pokémon", ""} {
		assert.Equal(t, SanitizeFreeText(input), lowerAndFold(input), input)
	}
	assert.Equal(t, "ooku", lowerAndFold("ŌOKU"))
}

/*
TestSparqlFold_MirrorsTable checks that the remote expression folds every vowel.
*/
func TestSparqlFold_MirrorsTable(t *testing.T) {
	expr := sparqlFold("str(?x)")

	assert.True(t, strings.HasSuffix(expr, ",'ū','u')"))
	assert.Contains(t, expr, "lcase(str(?x))")
	for _, m := range macrons {
		assert.Contains(t, expr, "'"+string(m.from)+"','"+string(m.to)+"'")
	}
	assert.Equal(t, len(macrons), strings.Count(expr, "replace("))
}

/*
TestStringLiteral_Escaping ensures user text cannot terminate the literal.
*/
func TestStringLiteral_Escaping(t *testing.T) {
	assert.Equal(t, `'jojo\'s'`, stringLiteral("jojo's"))
	assert.Equal(t, `'a\\b\nc'`, stringLiteral("a\\b\nc"))
	assert.Equal(t, `'dr\\. stone'`, regexLiteral("dr. stone"))
}

/*
TestStripSuffix_Idempotent covers titles and genres.
*/
func TestStripSuffix_Idempotent(t *testing.T) {
	titles := []string{"Naruto (manga)", "Naruto", "Berserk (manga) (manga)", "(manga)", ""}
	for _, title := range titles {
		once := StripTitleSuffix(title)
		assert.Equal(t, once, StripTitleSuffix(once), title)
		assert.False(t, strings.HasSuffix(once, " (manga)"), title)
	}
	assert.Equal(t, "Naruto", StripTitleSuffix("Naruto (manga)"))
	assert.Equal(t, "Naruto", StripTitleSuffix("Naruto"))

	assert.Equal(t, "Adventure", StripGenreSuffix("Adventure (genre)"))
	assert.Equal(t, "Seinen", StripGenreSuffix(StripGenreSuffix("Seinen (genre)")))
	assert.Equal(t, "Comedy", StripGenreSuffix("Comedy"))
}

/*
TestLabelFromIdentifier derives readable labels from resource URIs.
*/
func TestLabelFromIdentifier(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"simple", "http://dbpedia.org/resource/Shueisha", "Shueisha"},
		{"underscores", "http://dbpedia.org/resource/Weekly_Shōnen_Jump", "Weekly Shōnen Jump"},
		{"escaped", "http://dbpedia.org/resource/Sh%C5%8Dnen_manga", "Shōnen manga"},
		{"trailing_slash", "http://dbpedia.org/resource/Kodansha/", "Kodansha"},
		{"not_a_uri", "Seinen_manga", "Seinen manga"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label := LabelFromIdentifier(tt.id)
			assert.Equal(t, tt.want, label)
			assert.NotEmpty(t, label)
		})
	}
}
