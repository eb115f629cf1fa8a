// Package alerts keeps the session's staleness alerts and dispatches
// notifications for new ones, suppressing duplicates.
package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/metrics"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/models"
)

// Key identifies one alertable stale period. Including the operator's last
// reply epoch means a new reply re-arms alerting for the same contact and
// severity; a contact that goes quiet again after being answered alerts
// again.
type Key struct {
	ContactID string
	Severity  models.Status
	SelfReply int64
}

// Record is one raised alert. Records live for the session only and are
// cleared on sign-out.
type Record struct {
	ID         string        `json:"id"`
	Severity   models.Status `json:"severity"`
	Name       string        `json:"name"`
	Reason     string        `json:"reason"`
	Priority   string        `json:"priority"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// Notification is the payload pushed to the operator channel when an
// alert is first raised.
type Notification struct {
	Name       string
	LastActive string
	Minutes    int64
	Pending    int
}

// Notifier delivers a notification. Delivery is best-effort; errors are
// logged by the caller and never escalated.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NopNotifier discards notifications. Used when no channel is configured.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notification) error { return nil }

// Log is the session alert log: an append-to-front record list plus the
// dedup index. Safe for use from the polling loop and HTTP handlers.
type Log struct {
	mu       sync.Mutex
	records  []Record
	seen     map[Key]struct{}
	notifier Notifier
	logger   zerolog.Logger
}

// NewLog creates an empty alert log.
func NewLog(notifier Notifier, logger zerolog.Logger) *Log {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Log{
		seen:     make(map[Key]struct{}),
		notifier: notifier,
		logger:   logger,
	}
}

// Raise records a new alert and dispatches its notification, unless an
// alert for the same key was already raised this session. Returns whether
// a new alert was created. The record is appended before dispatch so a
// delivery failure can never cause a duplicate attempt.
func (l *Log) Raise(ctx context.Context, key Key, note Notification) bool {
	l.mu.Lock()
	if _, dup := l.seen[key]; dup {
		l.mu.Unlock()
		return false
	}
	l.seen[key] = struct{}{}

	rec := Record{
		ID:         ulid.Make().String(),
		Severity:   key.Severity,
		Name:       note.Name,
		Reason:     "No response",
		Priority:   "high",
		OccurredAt: time.Now().UTC(),
	}
	l.records = append([]Record{rec}, l.records...)
	l.mu.Unlock()

	metrics.AlertsRaised.Inc()

	// At most one attempt, no retry.
	if err := l.notifier.Notify(ctx, note); err != nil {
		metrics.AlertDispatchFailures.Inc()
		l.logger.Warn().Err(err).
			Str("contact", note.Name).
			Msg("alert notification delivery failed")
	}
	return true
}

// Records returns the alerts, most recent first.
func (l *Log) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of raised alerts.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Reset clears the log and the dedup index. Called on sign-out.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	l.seen = make(map[Key]struct{})
}
