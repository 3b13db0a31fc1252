// Package metrics defines the custom Prometheus metrics of the trip backend.
// HTTP request metrics come from echoprometheus; everything here is domain
// level. Metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trip"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts password logins.
// Label:
//   - result: "success" or "rejected"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of password login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts session tokens that failed authentication.
// Label:
//   - gate: "bearer" or "cookie"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected session tokens, by auth gate.",
	},
	[]string{"gate"},
)

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created bookings.
// Label:
//   - kind: "accommodation" or "flight"
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by kind.",
	},
	[]string{"kind"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsProcessedTotal counts booking events that completed processing.
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_processed_total",
		Help:      "Total number of booking events successfully processed.",
	},
	[]string{"kind"},
)

// EventsErrorsTotal counts booking event failures.
// Label:
//   - reason: "publish_failed", "audit_failed" or "queue_full"
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of booking event processing failures.",
	},
	[]string{"reason"},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventProcessingDuration measures end-to-end processing of one event.
var EventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_processing_duration_seconds",
		Help:      "Duration of booking event processing from dequeue to completion.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
