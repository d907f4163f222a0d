// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangagraph/internal/platform/metrics"
)

/*
TestMetrics_Recording verifies the counters move with each recording call.
*/
func TestMetrics_Recording(t *testing.T) {
	m := metrics.New()

	m.ObserveQuery(nil, 10*time.Millisecond)
	m.ObserveQuery(errors.New("boom"), 20*time.Millisecond)
	m.RecordAssembled()
	m.RecordDegraded("studio")
	m.RecordDegraded("studio")
	m.RecordSearch("byName", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(metrics.OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsAssembled))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AttributesDegraded.WithLabelValues("studio")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("byName", metrics.OutcomeOK)))
}

/*
TestMetrics_NilSafe ensures an uninstrumented component never panics.
*/
func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveQuery(nil, time.Second)
		m.RecordAssembled()
		m.RecordDegraded("genre")
		m.RecordSearch("byGenre", nil)
	})
}

/*
TestMetrics_Handler checks the exposition endpoint.
*/
func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.RecordAssembled()

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "mangagraph_catalog_records_assembled_total 1")
}
