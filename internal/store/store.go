// Package store holds the dashboard's memory-resident state. There is no
// persistence: every polling cycle re-derives the world and publishes it
// as one atomic snapshot replacement, so readers never see partial data.
package store

import (
	"sync/atomic"
	"time"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/models"
)

// recentWindow is how recently a contact must have been active to count
// as "recently active" in the stats.
const recentWindow = 300

// Snapshot is one published view of the active conversations. Snapshots
// are immutable once published; a new cycle supersedes the whole thing.
type Snapshot struct {
	Chatters  []models.Chatter `json:"chatters"`
	FetchedAt time.Time        `json:"fetchedAt"`
	// Stale marks that the most recent cycle failed and this is the last
	// good view, kept visible rather than cleared.
	Stale bool `json:"stale"`
}

// Stats are the headline dashboard numbers derived from a snapshot.
type Stats struct {
	ActiveChatters int `json:"activeChatters"`
	TotalPending   int `json:"totalPending"`
	RecentlyActive int `json:"recentlyActive"`
}

// Stats computes the snapshot's headline numbers against the given clock.
func (s Snapshot) Stats(now time.Time) Stats {
	st := Stats{ActiveChatters: len(s.Chatters)}
	for _, c := range s.Chatters {
		st.TotalPending += c.PendingCount
		if c.LastMessageTimestamp > 0 && now.Unix()-c.LastMessageTimestamp < recentWindow {
			st.RecentlyActive++
		}
	}
	return st
}

// Store publishes snapshots via atomic pointer replacement. The polling
// loop is the only writer; HTTP handlers and the re-grade ticker read.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

// New creates a store holding an empty, never-fetched snapshot.
func New() *Store {
	s := &Store{}
	s.snap.Store(&Snapshot{})
	return s
}

// Snapshot returns the current view. Callers must treat it as read-only.
func (s *Store) Snapshot() Snapshot {
	return *s.snap.Load()
}

// Publish replaces the current snapshot with a fresh successful fetch.
func (s *Store) Publish(chatters []models.Chatter, fetchedAt time.Time) {
	s.snap.Store(&Snapshot{Chatters: chatters, FetchedAt: fetchedAt})
}

// Republish swaps in re-graded chatters while keeping the fetch metadata.
// Used by the staleness-only recheck, which does not refetch.
func (s *Store) Republish(chatters []models.Chatter) {
	cur := s.snap.Load()
	s.snap.Store(&Snapshot{Chatters: chatters, FetchedAt: cur.FetchedAt, Stale: cur.Stale})
}

// MarkStale flags the current snapshot after a failed cycle. The data
// stays visible; only the freshness indicator changes.
func (s *Store) MarkStale() {
	cur := s.snap.Load()
	if cur.Stale {
		return
	}
	s.snap.Store(&Snapshot{Chatters: cur.Chatters, FetchedAt: cur.FetchedAt, Stale: true})
}

// Ready reports whether at least one cycle has completed successfully.
func (s *Store) Ready() bool {
	return !s.snap.Load().FetchedAt.IsZero()
}
