// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// # Suffixes

const (
	mangaSuffix = " (manga)"
	genreSuffix = " (genre)"
)

// macrons maps the macronized romanization vowels to their plain form.
//
// The same table drives [SanitizeFreeText] and [sparqlFold]; both sides of a
// comparison must fold identically or accent-insensitive matching breaks.
var macrons = []struct {
	from rune
	to   rune
}{
	{'ā', 'a'},
	{'ē', 'e'},
	{'ī', 'i'},
	{'ō', 'o'},
	{'ū', 'u'},
}

func foldMacron(r rune) rune {
	for _, m := range macrons {
		if r == m.from {
			return m.to
		}
	}
	return r
}

var macronFolder = runes.Map(foldMacron)

// # Free Text

// SanitizeFreeText lower-cases text and folds the macronized vowels, so that
// "Ōoku" and "ooku" produce the same search key.
func SanitizeFreeText(text string) string {
	// cases.Caser is stateful, so a fresh chain is built per call.
	chain := transform.Chain(cases.Lower(language.Und), macronFolder)
	folded, _, err := transform.String(chain, text)
	if err != nil {
		return lowerAndFold(text)
	}
	return folded
}

// lowerAndFold is the rune-by-rune equivalent of the transformer chain.
func lowerAndFold(text string) string {
	return strings.Map(foldMacron, strings.ToLower(text))
}

// sparqlFold wraps expr in the SPARQL expression performing the same
// normalization as [SanitizeFreeText] on the remote side.
func sparqlFold(expr string) string {
	folded := "lcase(" + expr + ")"
	for _, m := range macrons {
		folded = "replace(" + folded + ",'" + string(m.from) + "','" + string(m.to) + "')"
	}
	return folded
}

// regexLiteral turns sanitized user text into a single-quoted SPARQL string
// usable as a regex pattern that matches the text literally.
func regexLiteral(text string) string {
	return stringLiteral(regexp.QuoteMeta(text))
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func stringLiteral(text string) string {
	return "'" + literalEscaper.Replace(text) + "'"
}

// # Labels

// StripTitleSuffix removes the " (manga)" disambiguation suffix.
func StripTitleSuffix(title string) string {
	return stripSuffix(title, mangaSuffix)
}

// StripGenreSuffix removes the " (genre)" disambiguation suffix.
func StripGenreSuffix(genre string) string {
	return stripSuffix(genre, genreSuffix)
}

// stripSuffix removes every trailing copy of suffix, so applying it twice
// gives the same result as applying it once.
func stripSuffix(text, suffix string) string {
	for strings.HasSuffix(text, suffix) {
		text = strings.TrimSuffix(text, suffix)
	}
	return text
}

// LabelFromIdentifier derives a display label from a resource identifier:
// the final path segment with underscores replaced by spaces.
//
//	http://dbpedia.org/resource/Weekly_Shōnen_Jump → "Weekly Shōnen Jump"
func LabelFromIdentifier(identifier string) string {
	fragment := lastFragment(identifier)
	return strings.ReplaceAll(fragment, "_", " ")
}

// lastFragment returns the final path segment of a URI. Strings that do not
// parse as absolute URIs are returned unchanged.
func lastFragment(identifier string) string {
	parsed, err := url.Parse(identifier)
	if err != nil || parsed.Scheme == "" {
		return identifier
	}

	trimmed := strings.TrimRight(identifier, "/")
	fragment := trimmed[strings.LastIndex(trimmed, "/")+1:]
	if fragment == "" {
		return identifier
	}

	if decoded, err := url.PathUnescape(fragment); err == nil {
		return decoded
	}
	return fragment
}
