// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

Handlers read query parameters through it so that trimming and defaults behave
the same way on every endpoint.
*/
package requestutil

import (
	"net/http"
	"strings"
)

/*
Query retrieves a trimmed URL query parameter from the request.

Returns an empty string when the parameter is missing.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
QueryDefault retrieves a URL query parameter, or fallback when it is missing or blank.
*/
func QueryDefault(request *http.Request, name, fallback string) string {
	if value := Query(request, name); value != "" {
		return value
	}
	return fallback
}
