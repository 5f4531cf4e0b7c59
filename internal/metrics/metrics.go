// Package metrics exposes Prometheus instrumentation. Its main purpose is
// making the aggregation engine's silent degradations visible: records that
// contribute zero because of missing reference data are counted here while
// the computed totals stay unchanged.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UnknownCategorySkips counts bills or subscriptions dropped from the
	// category breakdown because their category id did not resolve.
	UnknownCategorySkips = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billfold_unknown_category_skips_total",
		Help: "Records skipped in aggregation because their category id did not resolve.",
	})

	// UnknownFrequency counts subscriptions whose billing frequency was not
	// recognized and therefore normalized to a zero monthly amount.
	UnknownFrequency = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billfold_unknown_frequency_total",
		Help: "Subscriptions normalized to zero because their frequency was not recognized.",
	})

	// RemindersDelivered counts reminder notifications consumed and
	// acknowledged on the delivery side.
	RemindersDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billfold_reminders_delivered_total",
		Help: "Reminder notifications delivered to the consumer.",
	})

	// HTTPRequests counts handled requests by route and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billfold_http_requests_total",
		Help: "HTTP requests handled, by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "billfold_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
