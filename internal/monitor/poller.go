package monitor

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/alerts"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/centro"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/metrics"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/models"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/store"
)

// ErrCycleInFlight is returned when a cycle is skipped because the
// previous one has not finished. Overlapping cycles are skipped, never
// queued.
var ErrCycleInFlight = errors.New("polling cycle already in flight")

// Poller drives the fetch/evaluate/alert loop and publishes snapshots.
type Poller struct {
	client  *centro.Client
	store   *store.Store
	alerts  *alerts.Log
	logger  zerolog.Logger
	poll    time.Duration
	recheck time.Duration

	now      func() time.Time
	inFlight chan struct{} // size 1; full means a cycle is running
}

// NewPoller creates a poller. poll is the full-fetch cadence; recheck is
// the staleness-only re-grade cadence.
func NewPoller(client *centro.Client, st *store.Store, al *alerts.Log, logger zerolog.Logger, poll, recheck time.Duration) *Poller {
	return &Poller{
		client:   client,
		store:    st,
		alerts:   al,
		logger:   logger,
		poll:     poll,
		recheck:  recheck,
		now:      time.Now,
		inFlight: make(chan struct{}, 1),
	}
}

// Run executes one cycle immediately, then keeps the snapshot fresh until
// ctx is cancelled. Cycle failures are logged and never stop the loop.
func (p *Poller) Run(ctx context.Context) {
	p.runLogged(ctx)

	full := time.NewTicker(p.poll)
	defer full.Stop()
	regrade := time.NewTicker(p.recheck)
	defer regrade.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-full.C:
			p.runLogged(ctx)
		case <-regrade.C:
			p.Recheck(ctx)
		}
	}
}

func (p *Poller) runLogged(ctx context.Context) {
	if err := p.RunCycle(ctx); err != nil && !errors.Is(err, ErrCycleInFlight) {
		p.logger.Error().Err(err).Msg("polling cycle failed")
	}
}

// RunCycle performs one full cycle: authenticate, fetch contacts and
// histories, evaluate, raise alerts, publish the snapshot. On any upstream
// failure the cycle's remaining work is abandoned and the previous
// snapshot stays visible, marked stale.
func (p *Poller) RunCycle(ctx context.Context) error {
	select {
	case p.inFlight <- struct{}{}:
	default:
		metrics.PollCycles.WithLabelValues("skipped").Inc()
		p.logger.Warn().Msg("previous cycle still running, skipping")
		return ErrCycleInFlight
	}
	defer func() { <-p.inFlight }()

	start := time.Now()
	err := p.cycle(ctx)
	metrics.PollCycleDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PollCycles.WithLabelValues("error").Inc()
		p.store.MarkStale()
		return err
	}
	metrics.PollCycles.WithLabelValues("ok").Inc()
	return nil
}

func (p *Poller) cycle(ctx context.Context) error {
	auth, err := p.client.Authenticate(ctx)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("client.auth").Inc()
		return err
	}

	contacts, err := p.client.ListContacts(ctx, auth)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("chat.getContacts").Inc()
		return err
	}

	now := p.now()
	active := make([]models.Chatter, 0, len(contacts))
	for id, contact := range contacts {
		msgs, err := p.client.ListMessages(ctx, auth, id)
		if err != nil {
			metrics.UpstreamErrors.WithLabelValues("chat.getMessages").Inc()
			return err
		}

		ch := Evaluate(p.client.ClientToken, contact, msgs, now)
		p.maybeAlert(ctx, ch, now)

		// Nothing pending means nothing actionable; keep it off the board.
		if ch.PendingCount > 0 {
			active = append(active, ch)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].LastMessageTimestamp > active[j].LastMessageTimestamp
	})

	p.store.Publish(active, now)
	p.publishGauges(active)

	p.logger.Info().
		Int("contacts", len(contacts)).
		Int("active", len(active)).
		Int("alerts", p.alerts.Len()).
		Msg("polling cycle completed")
	return nil
}

// Recheck re-grades the current snapshot against the wall clock without
// refetching, so a conversation crossing the critical threshold between
// polls alerts promptly.
func (p *Poller) Recheck(ctx context.Context) {
	snap := p.store.Snapshot()
	if len(snap.Chatters) == 0 {
		return
	}

	now := p.now()
	regraded := make([]models.Chatter, len(snap.Chatters))
	for i, ch := range snap.Chatters {
		ch = Regrade(ch, now)
		p.maybeAlert(ctx, ch, now)
		regraded[i] = ch
	}
	p.store.Republish(regraded)
	p.publishGauges(regraded)
}

func (p *Poller) maybeAlert(ctx context.Context, ch models.Chatter, now time.Time) {
	if ch.Status != models.StatusCritical || !ch.AwaitingReply || ch.PendingCount == 0 {
		return
	}

	key := alerts.Key{
		ContactID: ch.ID,
		Severity:  models.StatusCritical,
		SelfReply: ch.SelfReplyTimestamp,
	}
	raised := p.alerts.Raise(ctx, key, alerts.Notification{
		Name:       ch.Name,
		LastActive: ch.LastActive,
		Minutes:    (now.Unix() - ch.LastMessageTimestamp) / 60,
		Pending:    ch.PendingCount,
	})
	if raised {
		p.logger.Info().
			Str("contact", ch.Name).
			Int("pending", ch.PendingCount).
			Int64("last_message_ts", ch.LastMessageTimestamp).
			Msg("critical response-time alert raised")
	}
}

func (p *Poller) publishGauges(chatters []models.Chatter) {
	pending := 0
	for _, c := range chatters {
		pending += c.PendingCount
	}
	metrics.ActiveChatters.Set(float64(len(chatters)))
	metrics.PendingMessages.Set(float64(pending))
}
