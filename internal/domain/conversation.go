package domain

import "strings"

// BotName is the assistant persona, used for transcript speaker labels and
// prompt composition.
const BotName = "ChatBot AI"

// AttachmentRef describes a file the user attached to a message.
// Only metadata travels with the message; file content is never parsed.
type AttachmentRef struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`

	// PreviewPath points at a locally spooled preview copy (images only).
	// It is a scoped resource: released when the owning message leaves the
	// active session. Never persisted.
	PreviewPath string `json:"-"`
}

// Message is a single entry in a conversation. Immutable once created and
// owned exclusively by the topic that contains it.
type Message struct {
	ID         MessageID      `json:"id"`
	Text       string         `json:"text"`
	Author     Role           `json:"author"`
	CreatedAt  Timestamp      `json:"created_at"`
	Attachment *AttachmentRef `json:"attachment,omitempty"`
}

// Topic is a persisted, titled conversation. Mutable only by appending
// messages or by deletion, never partially edited.
type Topic struct {
	ID        TopicID   `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt Timestamp `json:"created_at"`
}

// MaxTopics bounds the persisted topic collection to the most recent entries.
const MaxTopics = 20

// titleLimit is the maximum derived title length before the ellipsis marker.
const titleLimit = 50

// DeriveTitle builds a topic title from the first user-authored message:
// its first line, truncated to 50 characters plus "..." when longer.
// Titles are derived, never independently edited.
func DeriveTitle(msgs []Message) string {
	for _, m := range msgs {
		if m.Author != RoleUser {
			continue
		}
		line := m.Text
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if r := []rune(line); len(r) > titleLimit {
			return string(r[:titleLimit]) + "..."
		}
		return line
	}
	return ""
}
