// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangagraph/internal/platform/sparql"
)

func serve(t *testing.T, querier Querier, target string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	handler := NewHandler(newTestService(querier, Options{}))
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder, envelope
}

/*
TestHandler_Search returns records wrapped in the data envelope.
*/
func TestHandler_Search(t *testing.T) {
	recorder, envelope := serve(t, narutoGraph(), "/search?q=Naruto")
	require.Equal(t, http.StatusOK, recorder.Code)

	var records []Manga
	require.NoError(t, json.Unmarshal(envelope["data"], &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Naruto", *records[0].TitleEnglish)
	assert.Equal(t, "1999-09-21", records[0].FirstPublicationDate.String())
}

/*
TestHandler_SearchEmpty encodes no matches as an empty array.
*/
func TestHandler_SearchEmpty(t *testing.T) {
	recorder, envelope := serve(t, &fakeQuerier{}, "/search?mode=byAuthor&q=nobody")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, string(envelope["data"]))
}

/*
TestHandler_Errors maps validation and upstream failures to status codes.
*/
func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		querier    Querier
		target     string
		wantStatus int
		wantCode   string
	}{
		{"missing_query", &fakeQuerier{}, "/search", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_mode", &fakeQuerier{}, "/search?mode=byMood&q=x", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_uri", &fakeQuerier{}, "/lookup?uri=Naruto", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"upstream", (&fakeQuerier{}).on(nil, errEndpointDown, discoveryMarker), "/search?q=naruto", http.StatusBadGateway, "UPSTREAM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, envelope := serve(t, tt.querier, tt.target)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.JSONEq(t, `"`+tt.wantCode+`"`, string(envelope["code"]))
			assert.NotContains(t, recorder.Body.String(), errEndpointDown.Error())
		})
	}
}

/*
TestHandler_Lookup assembles a record from a URI parameter.
*/
func TestHandler_Lookup(t *testing.T) {
	recorder, envelope := serve(t, narutoGraph(), "/lookup?uri="+url.QueryEscape(narutoURI))
	require.Equal(t, http.StatusOK, recorder.Code)

	var manga Manga
	require.NoError(t, json.Unmarshal(envelope["data"], &manga))
	assert.Equal(t, narutoURI, manga.SourceURL)
	assert.Equal(t, []string{"Masashi Kishimoto"}, manga.Authors)
}

/*
TestHandler_Labels lists labels for the requested mode.
*/
func TestHandler_Labels(t *testing.T) {
	fake := (&fakeQuerier{}).on([]sparql.Row{
		sparql.NewRow(varLabel, "Kentaro Miura"),
	}, nil, labelsMarker, "dbo:author")

	recorder, envelope := serve(t, fake, "/labels?mode=byAuthor")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `["Kentaro Miura"]`, string(envelope["data"]))
}
