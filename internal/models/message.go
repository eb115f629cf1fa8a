package models

// Message types on the platform wire.
const (
	TypeText       = "text"
	TypeAttachment = "attachment"
)

// Message represents one message in a conversation as returned by
// chat.getMessages. Exactly one of Data/AttachmentInfo is meaningful,
// selected by Type.
type Message struct {
	AuthorExternalID string          `json:"authorExternalId"`
	Timestamp        int64           `json:"timestamp"` // Unix seconds
	Type             string          `json:"type"`
	Data             *MessageData    `json:"data,omitempty"`
	AttachmentInfo   *AttachmentInfo `json:"attachmentInfo,omitempty"`
}

// MessageData carries the body of a text message.
type MessageData struct {
	Text string `json:"text"`
}

// AttachmentInfo carries an attachment message: optional caption text
// plus zero or more media resources.
type AttachmentInfo struct {
	Message     string     `json:"message,omitempty"`
	ResourceMap []Resource `json:"resourceMap,omitempty"`
}

// Resource is one media item inside an attachment.
type Resource struct {
	ID           string            `json:"id"`
	Type         string            `json:"type,omitempty"`
	ResourceInfo *ResourceInfo     `json:"resourceInfo,omitempty"`
	Thumbs       map[string]string `json:"thumbs,omitempty"`
}

// ResourceInfo describes the media behind a resource.
type ResourceInfo struct {
	MediaType    string `json:"mediaType,omitempty"` // "image" or "video"
	MediaSubType string `json:"mediaSubType,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	Format       int    `json:"format,omitempty"`
}

// Valid reports whether the message is displayable and countable: a text
// message with a non-empty body, or an attachment with at least a caption
// or one resource. Everything else is discarded before any counting runs.
func (m Message) Valid() bool {
	switch m.Type {
	case TypeText:
		return m.Data != nil && m.Data.Text != ""
	case TypeAttachment:
		return m.AttachmentInfo != nil &&
			(m.AttachmentInfo.Message != "" || len(m.AttachmentInfo.ResourceMap) > 0)
	default:
		return false
	}
}
