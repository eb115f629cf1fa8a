// Package monitor computes response-time state for conversations and runs
// the polling loop that keeps the dashboard snapshot fresh.
package monitor

import (
	"fmt"
	"time"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/models"
)

// Staleness thresholds, in seconds since the last unanswered incoming
// message. Evaluated high to low, first match wins.
const (
	criticalAfter = 900
	warningAfter  = 600
)

// Classify maps elapsed seconds to a severity tier.
func Classify(elapsed int64) models.Status {
	switch {
	case elapsed >= criticalAfter:
		return models.StatusCritical
	case elapsed >= warningAfter:
		return models.StatusWarning
	default:
		return models.StatusNormal
	}
}

// ValidMessages filters a conversation down to displayable messages.
// Applied before any counting logic runs.
func ValidMessages(msgs []models.Message) []models.Message {
	valid := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Valid() {
			valid = append(valid, m)
		}
	}
	return valid
}

// LastAuthoredBy returns the last valid message authored by author,
// scanning from the end of the conversation.
func LastAuthoredBy(msgs []models.Message, author string) (models.Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Valid() && msgs[i].AuthorExternalID == author {
			return msgs[i], true
		}
	}
	return models.Message{}, false
}

// Evaluate computes the dashboard row for one contact from its message
// history. operatorID is the account's own author ID; pending counts only
// messages that arrived after the operator's last reply, so it is an
// "unanswered since my last reply" count, not total unread.
func Evaluate(operatorID string, contact models.Contact, msgs []models.Message, now time.Time) models.Chatter {
	valid := ValidMessages(msgs)

	var selfTS int64
	if self, ok := LastAuthoredBy(valid, operatorID); ok {
		selfTS = self.Timestamp
	}

	pending := 0
	for _, m := range valid {
		if m.AuthorExternalID != operatorID && m.Timestamp > selfTS {
			pending++
		}
	}

	lastTS := contact.LastMessageTimestamp
	awaiting := false
	if len(valid) > 0 {
		last := valid[len(valid)-1]
		lastTS = last.Timestamp
		awaiting = last.AuthorExternalID != operatorID
	}

	// Staleness only applies while the operator owes a reply; once the
	// last message is the operator's own, the clock stops.
	status := models.StatusNormal
	if awaiting && lastTS > 0 {
		status = Classify(now.Unix() - lastTS)
	}

	name := contact.Name
	if name == "" {
		name = "Unknown User"
	}

	return models.Chatter{
		ID:                   contact.ID,
		Name:                 name,
		Avatar:               contact.Avatar,
		PendingCount:         pending,
		LastMessageTimestamp: lastTS,
		LastActive:           FormatLastActive(lastTS, now),
		AwaitingReply:        awaiting,
		Status:               status,
		SelfReplyTimestamp:   selfTS,
	}
}

// Regrade recomputes the time-derived fields of a chatter against a newer
// clock without refetching history.
func Regrade(c models.Chatter, now time.Time) models.Chatter {
	c.LastActive = FormatLastActive(c.LastMessageTimestamp, now)
	c.Status = models.StatusNormal
	if c.AwaitingReply && c.LastMessageTimestamp > 0 {
		c.Status = Classify(now.Unix() - c.LastMessageTimestamp)
	}
	return c
}

// FormatLastActive renders a last-activity timestamp the way the dashboard
// shows it.
func FormatLastActive(ts int64, now time.Time) string {
	if ts == 0 {
		return "Never"
	}
	minutes := (now.Unix() - ts) / 60
	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case minutes < 24*60:
		return fmt.Sprintf("%dh ago", minutes/60)
	default:
		return "Over a day ago"
	}
}
