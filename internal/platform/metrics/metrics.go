// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics owns the Prometheus collectors exported by the API server.

A dedicated [prometheus.Registry] is used instead of the global default so that
tests can build isolated instances. Every recording method is safe on a nil
[*Metrics], which lets components run without instrumentation.
*/
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mangagraph"

// # Outcomes

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics groups the collectors for the knowledge graph client and the catalog.
type Metrics struct {
	registry *prometheus.Registry

	// SPARQL endpoint traffic
	QueriesTotal  *prometheus.CounterVec
	QueryDuration prometheus.Histogram

	// Aggregation engine
	RecordsAssembled   prometheus.Counter
	AttributesDegraded *prometheus.CounterVec
	SearchesTotal      *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sparql",
				Name:      "queries_total",
				Help:      "Total number of SPARQL queries sent to the endpoint",
			},
			[]string{"outcome"},
		),

		QueryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "sparql",
				Name:      "query_duration_seconds",
				Help:      "SPARQL query round-trip duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		RecordsAssembled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "records_assembled_total",
				Help:      "Total number of manga records assembled",
			},
		),

		AttributesDegraded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "attributes_degraded_total",
				Help:      "Attribute lookups that failed and were dropped from the record",
			},
			[]string{"kind"},
		),

		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "searches_total",
				Help:      "Total number of searches by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
	}

	m.registry.MustRegister(
		m.QueriesTotal,
		m.QueryDuration,
		m.RecordsAssembled,
		m.AttributesDegraded,
		m.SearchesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// # Recording

// ObserveQuery records one SPARQL round trip.
func (m *Metrics) ObserveQuery(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(outcome(err)).Inc()
	m.QueryDuration.Observe(elapsed.Seconds())
}

// RecordAssembled counts one completed manga record.
func (m *Metrics) RecordAssembled() {
	if m == nil {
		return
	}
	m.RecordsAssembled.Inc()
}

// RecordDegraded counts an attribute kind dropped after a failed lookup.
func (m *Metrics) RecordDegraded(kind string) {
	if m == nil {
		return
	}
	m.AttributesDegraded.WithLabelValues(kind).Inc()
}

// RecordSearch counts one search by mode.
func (m *Metrics) RecordSearch(mode string, err error) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(mode, outcome(err)).Inc()
}

// # Exposition

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
