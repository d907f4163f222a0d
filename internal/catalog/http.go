// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog aggregates manga records from a public knowledge graph.

It discovers matching entities with one SPARQL query, then assembles a record
per entity by fanning out one description query and one query per attribute
kind, merging the answers into a [Manga].

# Endpoints

  - GET /search: Free-text search by title, author or genre.
  - GET /lookup: Direct assembly of one known resource URI.
  - GET /labels: Autocompletion labels for a search mode.

The handler serves as the bridge between RESTful requests and the [Service] layer.
*/
package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/mangagraph/internal/platform/request"
	"github.com/taibuivan/mangagraph/internal/platform/respond"
)

// Handler implements the HTTP layer for the manga catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/search", handler.search)
	router.Get("/lookup", handler.lookup)
	router.Get("/labels", handler.labels)

	return router
}

/*
GET /api/v1/manga/search.

Description: Discovers the entities matching q and returns one assembled record
per entity, in discovery order.

Request:
  - mode: string (byName, byAuthor or byGenre; defaults to byName)
  - q: string (Free text, at most 200 characters)

Response:
  - 200: []Manga: Matching records, possibly empty
  - 400: ErrValidation: Unknown mode or missing q
  - 502: ErrUpstream: Knowledge graph endpoint failure
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	mode := SearchMode(requestutil.QueryDefault(request, FieldMode, string(ModeByName)))

	records, err := handler.service.Search(request.Context(), mode, requestutil.Query(request, FieldQuery))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, records)
}

/*
GET /api/v1/manga/lookup.

Description: Assembles the record of a single resource without running discovery.

Request:
  - uri: string (Absolute http(s) resource URI)

Response:
  - 200: Manga: The assembled record
  - 400: ErrValidation: Missing or malformed uri
  - 502: ErrUpstream: Knowledge graph endpoint failure
*/
func (handler *Handler) lookup(writer http.ResponseWriter, request *http.Request) {
	manga, err := handler.service.SearchByIdentifier(request.Context(), requestutil.Query(request, FieldURI))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, manga)
}

/*
GET /api/v1/manga/labels.

Description: Lists the distinct labels a client can offer as completions for mode.

Request:
  - mode: string (byName, byAuthor or byGenre; defaults to byName)

Response:
  - 200: []string: Distinct labels
  - 400: ErrValidation: Unknown mode
  - 502: ErrUpstream: Knowledge graph endpoint failure
*/
func (handler *Handler) labels(writer http.ResponseWriter, request *http.Request) {
	mode := SearchMode(requestutil.QueryDefault(request, FieldMode, string(ModeByName)))

	labels, err := handler.service.Labels(request.Context(), mode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, labels)
}
