package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CatalogueRequests counts calls to the catalogue API
	CatalogueRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogue_api_requests_total",
			Help: "Total number of catalogue API requests",
		},
		[]string{"endpoint", "outcome"},
	)

	// CatalogueLatency tracks catalogue API latency
	CatalogueLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalogue_api_request_seconds",
			Help:    "Catalogue API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// CacheLookups counts dependency info cache lookups
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dependency_cache_lookups_total",
			Help: "Dependency info cache lookups by result",
		},
		[]string{"result"},
	)

	// Refreshes counts dependency info refreshes
	Refreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dependency_refresh_total",
			Help: "Dependency info refreshes by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(CatalogueRequests)
	prometheus.MustRegister(CatalogueLatency)
	prometheus.MustRegister(CacheLookups)
	prometheus.MustRegister(Refreshes)
}

// ObserveCatalogueCall records one catalogue API call
func ObserveCatalogueCall(endpoint string, start time.Time, err error) {
	CatalogueRequests.WithLabelValues(endpoint, outcome(err)).Inc()
	CatalogueLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveRefresh records a refresh outcome
func ObserveRefresh(err error) {
	Refreshes.WithLabelValues(outcome(err)).Inc()
}
