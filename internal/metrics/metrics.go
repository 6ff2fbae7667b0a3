package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorapp_api_requests_total",
		Help: "Requests sent to the order API, by method and outcome.",
	},
		[]string{"method", "outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vendorapp_api_request_duration_seconds",
		Help:    "Latency of order API requests.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method"},
	)

	PagesLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendorapp_order_pages_loaded_total",
		Help: "Order list pages applied to the list.",
	})

	StaleResponsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendorapp_order_pages_stale_total",
		Help: "Order list responses discarded because a newer request was issued.",
	})

	OrderUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorapp_order_updates_total",
		Help: "Confirmed order edits, by kind.",
	},
		[]string{"kind"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorapp_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	OrderListItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vendorapp_order_list_items",
		Help: "Current number of orders held by the list.",
	})
)
