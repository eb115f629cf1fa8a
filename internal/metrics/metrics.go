package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatter_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatter_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Token issuance metrics
	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatter_tokens_issued_total",
			Help: "Total auth tokens issued",
		},
	)

	TokenIssueFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatter_token_issue_failures_total",
			Help: "Total failed token issuance requests",
		},
		[]string{"reason"}, // "invalid_request" or "crypto"
	)

	// Polling metrics
	PollCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatter_poll_cycles_total",
			Help: "Total polling cycles",
		},
		[]string{"result"}, // "ok", "error" or "skipped"
	)

	PollCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatter_poll_cycle_duration_seconds",
			Help:    "Full polling cycle duration",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatter_upstream_errors_total",
			Help: "Total platform API failures",
		},
		[]string{"op"},
	)

	// Dashboard state metrics
	ActiveChatters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatter_active_chatters",
			Help: "Contacts with pending messages in the current snapshot",
		},
	)

	PendingMessages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatter_pending_messages",
			Help: "Total unanswered messages in the current snapshot",
		},
	)

	// Alert metrics
	AlertsRaised = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatter_alerts_raised_total",
			Help: "Total alert records created",
		},
	)

	AlertDispatchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatter_alert_dispatch_failures_total",
			Help: "Total failed alert notification deliveries",
		},
	)

	// Relay metrics
	MessagesRelayed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatter_messages_relayed_total",
			Help: "Total operator messages sent through the platform",
		},
	)
)
