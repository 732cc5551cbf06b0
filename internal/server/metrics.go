package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the allow-list server hands out.
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	tokensServed prometheus.Counter
	listSize     prometheus.Gauge
}

// NewMetrics registers the server's collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatekeeper",
			Name:      "allowlist_requests_total",
			Help:      "Allow-list requests by HTTP status.",
		}, []string{"status"}),
		tokensServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gatekeeper",
			Name:      "allowlist_tokens_served_total",
			Help:      "Tokens returned across all allow-list responses.",
		}),
		listSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gatekeeper",
			Name:      "allowlist_tokens",
			Help:      "Tokens in the allow-list file at the last request.",
		}),
	}
	m.registry.MustRegister(m.requests, m.tokensServed, m.listSize)
	return m
}

// Registry exposes the collectors for scraping.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
