package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "messaging"

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)

	// Chat metrics
	MessagesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_created_total",
			Help:      "Total messages stored",
		},
		[]string{"origin"}, // "http" or "realtime"
	)

	ReceiptsMarked = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipts_marked_total",
			Help:      "Total read receipts stored",
		},
	)

	ConversationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	ParticipantCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "participant_cache_lookups_total",
			Help:      "Participant cache lookups",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	// Outbox metrics
	OutboxEventsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_dispatched_total",
			Help:      "Outbox events processed by the dispatcher",
		},
		[]string{"topic", "result"}, // "sent", "failed", "unhandled"
	)

	OutboxHandlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "outbox_handler_duration_seconds",
			Help:      "Outbox handler duration",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"topic"},
	)

	OutboxPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outbox_pending_events",
			Help:      "Outbox events waiting for dispatch",
		},
	)

	OutboxOldestPendingAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outbox_oldest_pending_age_seconds",
			Help:      "Age of the oldest pending outbox event",
		},
	)

	// Realtime metrics
	RealtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_connections",
			Help:      "Live realtime connections",
		},
	)

	RealtimeFrames = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_frames_total",
			Help:      "Inbound realtime frames",
		},
		[]string{"event", "result"},
	)

	RealtimeDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_dropped_connections_total",
			Help:      "Connections closed because their send buffer was full",
		},
	)
)
