// Package metrics exposes Prometheus counters for surprises, email dispatch and
// recovered panics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SurprisesServed counts surprises returned to clients, by type.
	SurprisesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "answerai",
		Name:      "surprises_served_total",
		Help:      "Surprises returned to clients.",
	}, []string{"type"})

	// EmailsDispatched counts delivery attempts by email kind and outcome.
	EmailsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "answerai",
		Name:      "emails_dispatched_total",
		Help:      "Email dispatch attempts by kind and outcome.",
	}, []string{"kind", "outcome"})

	// PanicsRecovered counts handler panics turned into 500 responses.
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "answerai",
		Name:      "http_panics_recovered_total",
		Help:      "Handler panics recovered by HTTP method.",
	}, []string{"method"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
