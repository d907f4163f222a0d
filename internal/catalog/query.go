// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"fmt"
	"strings"
)

// # Query Builder
//
// Pure functions producing SPARQL strings. Identifiers must come from
// [ParseEntityID]; free text must go through [SanitizeFreeText] first.

// prefixes declares the namespaces used below. The public endpoint predefines
// them, but a self-hosted mirror may not.
const prefixes = `PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX dbo: <http://dbpedia.org/ontology/>
PREFIX dbp: <http://dbpedia.org/property/>
`

// Result variable names shared by the builders and their consumers.
const (
	varManga                = "manga"
	varLabel                = "label"
	varTitleEnglish         = "titleEnglish"
	varTitleRomaji          = "titleRomaji"
	varTitleKanji           = "titleKanji"
	varDescription          = "description"
	varNumberOfVolumes      = "numberOfVolumes"
	varFirstPublicationDate = "firstPublicationDate"
	varLastPublicationDate  = "lastPublicationDate"
)

// clampLimit maps a non-positive limit to MaxResults and caps the rest at
// ResultCeiling, so every discovery query stays bounded.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return MaxResults
	case limit > ResultCeiling:
		return ResultCeiling
	}
	return limit
}

// BuildDiscoveryQuery returns the query selecting candidate entities for mode.
//
// sanitized must already be the output of [SanitizeFreeText]. An unknown mode
// yields the by-name query.
func BuildDiscoveryQuery(mode SearchMode, sanitized string, limit int) string {
	pattern := regexLiteral(sanitized)

	var body string
	switch mode {
	case ModeByAuthor:
		body = fmt.Sprintf(`  ?author_uri rdfs:label ?author_label .
  ?manga dbo:author ?author_uri .
  ?manga rdf:type dbo:Manga .
  FILTER(regex(%s, %s))
`, sparqlFold("str(?author_label)"), pattern)

	case ModeByGenre:
		// The graph stores genres both as labelled resources and as bare
		// literals, and some titles only carry a demographic. All three
		// shapes are unioned.
		body = fmt.Sprintf(`  {
    ?manga dbp:genre ?genre .
    ?manga rdf:type dbo:Manga .
    ?genre rdfs:label ?genre_label .
    FILTER(regex(%s, %s))
  }
  UNION
  {
    ?manga dbp:genre ?genre .
    ?manga rdf:type dbo:Manga .
    FILTER(isLiteral(?genre) && regex(%s, %s))
  }
  UNION
  {
    ?manga dbp:demographic ?genre .
    ?manga rdf:type dbo:Manga .
    FILTER(regex(%s, %s))
  }
`, sparqlFold("str(?genre_label)"), pattern,
			sparqlFold("str(?genre)"), pattern,
			sparqlFold("str(?genre)"), pattern)

	default:
		body = fmt.Sprintf(`  ?manga rdf:type dbo:Manga ;
         rdfs:label ?manga_label .
  FILTER(lang(?manga_label) = 'en')
  BIND(IF(contains(lcase(str(?manga_label)), '%s'), strbefore(str(?manga_label), '%s'), str(?manga_label)) AS ?manga_name)
  FILTER(regex(%s, %s))
`, mangaSuffix, mangaSuffix, sparqlFold("str(?manga_name)"), pattern)
	}

	return prefixes + "SELECT DISTINCT ?" + varManga + " WHERE {\n" + body +
		fmt.Sprintf("} LIMIT %d", clampLimit(limit))
}

// BuildDescriptionQuery returns the query for the scalar fields of id.
//
// Each field sits in its own OPTIONAL block so a missing one never hides the
// others. Free-text fields are restricted to English.
func BuildDescriptionQuery(id EntityID) string {
	iri := id.IRI()

	var builder strings.Builder
	builder.WriteString(prefixes)
	builder.WriteString("SELECT * WHERE {\n")
	fmt.Fprintf(&builder, "  OPTIONAL { %s rdfs:label ?%s . FILTER(lang(?%s) = 'en') }\n", iri, varTitleEnglish, varTitleEnglish)
	fmt.Fprintf(&builder, "  OPTIONAL { %s dbp:jaRomaji ?%s . }\n", iri, varTitleRomaji)
	fmt.Fprintf(&builder, "  OPTIONAL { %s dbp:jaKanji ?%s . }\n", iri, varTitleKanji)
	fmt.Fprintf(&builder, "  OPTIONAL { %s dbo:abstract ?%s . FILTER(lang(?%s) = 'en') }\n", iri, varDescription, varDescription)
	fmt.Fprintf(&builder, "  OPTIONAL { %s dbo:numberOfVolumes ?%s . }\n", iri, varNumberOfVolumes)
	fmt.Fprintf(&builder, "  OPTIONAL { %s dbo:firstPublicationDate ?%s . }\n", iri, varFirstPublicationDate)
	fmt.Fprintf(&builder, "  OPTIONAL { %s dbp:last ?%s . }\n", iri, varLastPublicationDate)
	builder.WriteString("} LIMIT 1")
	return builder.String()
}

// BuildAttributeQuery returns the query selecting every value of kind for id,
// each with its English label when one exists. An unknown kind returns "".
func BuildAttributeQuery(id EntityID, kind AttributeKind) string {
	if !kind.Valid() {
		return ""
	}

	uri := "?" + kind.uriVar()
	label := "?" + kind.labelVar()

	return prefixes + fmt.Sprintf(`SELECT DISTINCT * WHERE {
  %s %s %s .
  OPTIONAL {
    %s rdfs:label %s .
    FILTER(!bound(%s) || lang(%s) = 'en')
  }
}`, id.IRI(), kind.Predicate(), uri, uri, label, label, label)
}

// BuildLabelsQuery returns the query listing the distinct display labels a
// user may pick from in mode, with any parenthetical qualifier removed.
func BuildLabelsQuery(mode SearchMode) string {
	var body string
	switch mode {
	case ModeByAuthor:
		body = `  ?author_uri rdfs:label ?label0 .
  ?manga dbo:author ?author_uri .
  ?manga rdf:type dbo:Manga .
  FILTER(lang(?label0) = 'en')
`
	case ModeByGenre:
		body = `  {
    ?manga dbp:genre ?genre .
    ?manga rdf:type dbo:Manga .
    ?genre rdfs:label ?label0 .
  }
  UNION
  {
    ?manga dbp:genre ?label0 .
    ?manga rdf:type dbo:Manga .
    FILTER(isLiteral(?label0))
  }
  UNION
  {
    ?manga dbp:demographic ?demo .
    ?manga rdf:type dbo:Manga .
    ?demo rdfs:label ?label0 .
  }
  FILTER(lang(?label0) = 'en' || lang(?label0) = '')
`
	default:
		body = `  ?manga rdf:type dbo:Manga ;
         rdfs:label ?label0 .
  FILTER(lang(?label0) = 'en')
`
	}

	return prefixes + "SELECT DISTINCT ?" + varLabel + " WHERE {\n" + body +
		"  BIND(IF(contains(lcase(str(?label0)), '('), strbefore(str(?label0), '('), str(?label0)) AS ?label)\n}"
}
