package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/models"
)

func TestEmptyStore(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	assert.Empty(t, snap.Chatters)
	assert.False(t, s.Ready())
}

func TestPublishReplacesWholesale(t *testing.T) {
	s := New()
	s.Publish([]models.Chatter{{ID: "c1"}, {ID: "c2"}}, time.Unix(1000, 0))
	s.Publish([]models.Chatter{{ID: "c3"}}, time.Unix(2000, 0))

	snap := s.Snapshot()
	assert.Len(t, snap.Chatters, 1)
	assert.Equal(t, "c3", snap.Chatters[0].ID)
	assert.Equal(t, time.Unix(2000, 0), snap.FetchedAt)
	assert.True(t, s.Ready())
}

func TestMarkStaleKeepsData(t *testing.T) {
	s := New()
	s.Publish([]models.Chatter{{ID: "c1"}}, time.Unix(1000, 0))
	s.MarkStale()

	snap := s.Snapshot()
	assert.True(t, snap.Stale)
	assert.Len(t, snap.Chatters, 1, "failed cycle must not clear the last good view")
	assert.Equal(t, time.Unix(1000, 0), snap.FetchedAt)

	// A successful publish clears the flag.
	s.Publish([]models.Chatter{{ID: "c1"}}, time.Unix(3000, 0))
	assert.False(t, s.Snapshot().Stale)
}

func TestRepublishKeepsFetchMetadata(t *testing.T) {
	s := New()
	s.Publish([]models.Chatter{{ID: "c1", Status: models.StatusNormal}}, time.Unix(1000, 0))
	s.MarkStale()
	s.Republish([]models.Chatter{{ID: "c1", Status: models.StatusCritical}})

	snap := s.Snapshot()
	assert.Equal(t, models.StatusCritical, snap.Chatters[0].Status)
	assert.Equal(t, time.Unix(1000, 0), snap.FetchedAt)
	assert.True(t, snap.Stale)
}

func TestSnapshotStats(t *testing.T) {
	now := time.Unix(10000, 0)
	snap := Snapshot{Chatters: []models.Chatter{
		{ID: "c1", PendingCount: 3, LastMessageTimestamp: 9900}, // 100s ago
		{ID: "c2", PendingCount: 1, LastMessageTimestamp: 9000}, // 1000s ago
	}}

	st := snap.Stats(now)
	assert.Equal(t, 2, st.ActiveChatters)
	assert.Equal(t, 4, st.TotalPending)
	assert.Equal(t, 1, st.RecentlyActive)
}
