package models

// Contact is one conversation partner as returned by chat.getContacts.
type Contact struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Avatar               string `json:"avatar,omitempty"`
	LastMessageTimestamp int64  `json:"lastMessageTimestamp,omitempty"` // Unix seconds, 0 if never
}

// Status is the staleness severity of a conversation.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Chatter is a contact with its derived response-time state, computed
// fresh every polling cycle. Instances are immutable once published.
type Chatter struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Avatar               string `json:"avatar,omitempty"`
	PendingCount         int    `json:"pendingCount"`
	LastMessageTimestamp int64  `json:"lastMessageTimestamp"`
	LastActive           string `json:"lastActive"`
	// AwaitingReply is true when the last valid message was not authored
	// by the operator. Staleness grading only applies in that case.
	AwaitingReply bool   `json:"awaitingReply"`
	Status        Status `json:"responseStatus"`
	// SelfReplyTimestamp is the operator's last reply time (0 if none).
	// It keys alert re-arming: a new reply resets alert eligibility.
	SelfReplyTimestamp int64 `json:"-"`
}
