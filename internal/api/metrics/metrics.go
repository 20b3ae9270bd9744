// Package metrics defines and registers all custom Prometheus metrics for
// the pizza service. It is the single source of truth for metric names,
// labels, and help strings.
//
// HTTP request counts and latencies come from the echoprometheus middleware;
// everything below is business-level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pizza"

// AuthAttemptsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// PizzasSoldTotal counts order items that were fulfilled at the factory.
var PizzasSoldTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pizzas_sold_total",
		Help:      "Total number of pizzas sold.",
	},
)

// OrderFailuresTotal counts orders the factory refused to fulfil.
var OrderFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_failures_total",
		Help:      "Total number of orders that failed fulfilment.",
	},
)

// RevenueTotal accumulates the value of fulfilled orders.
var RevenueTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_revenue_total",
		Help:      "Accumulated revenue of fulfilled orders.",
	},
)

// OrderDuration measures the end-to-end latency of order creation including
// the factory round trip.
var OrderDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_duration_seconds",
		Help:      "Duration of order creation from request to factory receipt.",
		Buckets:   prometheus.DefBuckets,
	},
)

// RegisterActiveDiners installs a gauge backed by the given reader, typically
// the Redis active-user tracker. Call at most once, at startup.
func RegisterActiveDiners(read func() float64) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_diners",
			Help:      "Distinct diner sessions seen in the current activity window.",
		},
		read,
	)
}
