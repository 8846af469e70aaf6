package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry
// so tests can create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsRendered *prometheus.CounterVec
	DegradedMints     prometheus.Counter
	LedgerRequests    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DocumentsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "documents_rendered_total",
			Help:      "Documents rendered, by kind.",
		}, []string{"kind"}),
		DegradedMints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "receipt_degraded_mints_total",
			Help:      "Receipt numbers minted from the local fallback counter.",
		}),
		LedgerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "ledger_requests_total",
			Help:      "Ledger reads, by outcome.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		m.DocumentsRendered,
		m.DegradedMints,
		m.LedgerRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
