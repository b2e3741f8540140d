package chat

import (
	"os"
	"sync"

	"github.com/obrolan/chatbot-api/internal/domain"
)

// Session is the active conversation: the in-memory message log bound to at
// most one topic, plus the single-turn admission flag. It replaces the
// module-level UI globals of old so several sessions can coexist and tests
// get a plain object to drive.
type Session struct {
	mu       sync.Mutex
	topicID  domain.TopicID
	messages []domain.Message
	busy     bool

	// releasePreview frees a message's spooled attachment preview when the
	// message leaves the session. Overridable in tests.
	releasePreview func(ref *domain.AttachmentRef)
}

func NewSession() *Session {
	return &Session{
		releasePreview: func(ref *domain.AttachmentRef) {
			if ref.PreviewPath != "" {
				_ = os.Remove(ref.PreviewPath)
			}
		},
	}
}

// BeginTurn claims the single in-flight slot. A false return means a turn is
// already running and the submission is rejected, not queued.
func (s *Session) BeginTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Session) EndTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) Append(msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Messages returns a snapshot of the log.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) TopicID() domain.TopicID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topicID
}

func (s *Session) SetTopicID(id domain.TopicID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topicID = id
}

// Reset evicts every message and releases their attachment previews.
// Used for "new chat" and before loading another topic.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.topicID = ""
}

// LoadTopic replaces the session content with a stored topic's log. The
// previous messages are evicted first so their previews get released.
func (s *Session) LoadTopic(t *domain.Topic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.topicID = t.ID
	s.messages = append(s.messages, t.Messages...)
}

// Snapshot builds the topic representing the current session, deriving the
// title from the first user message. CreatedAt is the caller's concern: the
// store preserves the original on upsert.
func (s *Session) Snapshot() *domain.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]domain.Message, len(s.messages))
	copy(msgs, s.messages)

	return &domain.Topic{
		ID:       s.topicID,
		Title:    domain.DeriveTitle(msgs),
		Messages: msgs,
	}
}

func (s *Session) evictLocked() {
	for i := range s.messages {
		if att := s.messages[i].Attachment; att != nil {
			s.releasePreview(att)
		}
	}
	s.messages = nil
}
