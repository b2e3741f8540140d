package chat

import (
	"testing"
	"time"

	"github.com/obrolan/chatbot-api/internal/domain"
)

func TestSessionBeginTurnAdmission(t *testing.T) {
	s := NewSession()

	if !s.BeginTurn() {
		t.Fatal("first BeginTurn should succeed")
	}
	if s.BeginTurn() {
		t.Fatal("second BeginTurn should be rejected while in flight")
	}

	s.EndTurn()
	if !s.BeginTurn() {
		t.Fatal("BeginTurn should succeed again after EndTurn")
	}
}

func TestSessionResetReleasesPreviews(t *testing.T) {
	s := NewSession()

	var released []string
	s.releasePreview = func(ref *domain.AttachmentRef) {
		released = append(released, ref.PreviewPath)
	}

	s.Append(domain.Message{
		ID:         "m1",
		Author:     domain.RoleUser,
		Text:       "lihat ini",
		Attachment: &domain.AttachmentRef{Name: "a.png", PreviewPath: "/tmp/a.png"},
	})
	s.Append(domain.Message{ID: "m2", Author: domain.RoleBot, Text: "oke"})

	s.Reset()

	if len(released) != 1 || released[0] != "/tmp/a.png" {
		t.Fatalf("expected one released preview, got %v", released)
	}
	if len(s.Messages()) != 0 {
		t.Fatal("expected empty session after reset")
	}
}

func TestSessionLoadTopicEvictsPrevious(t *testing.T) {
	s := NewSession()

	var released []string
	s.releasePreview = func(ref *domain.AttachmentRef) {
		released = append(released, ref.PreviewPath)
	}

	s.Append(domain.Message{
		ID:         "m1",
		Author:     domain.RoleUser,
		Attachment: &domain.AttachmentRef{Name: "b.jpg", PreviewPath: "/tmp/b.jpg"},
	})

	topic := &domain.Topic{
		ID:        "t1",
		Title:     "lama",
		Messages:  []domain.Message{{ID: "m9", Author: domain.RoleUser, Text: "dari arsip"}},
		CreatedAt: time.Now(),
	}
	s.LoadTopic(topic)

	if len(released) != 1 {
		t.Fatalf("topic switch must release previews, got %v", released)
	}
	if s.TopicID() != "t1" {
		t.Fatalf("expected topic id t1, got %q", s.TopicID())
	}
	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].Text != "dari arsip" {
		t.Fatalf("unexpected session content: %+v", msgs)
	}
}

func TestSessionSnapshotDerivesTitle(t *testing.T) {
	s := NewSession()
	s.SetTopicID("t2")
	s.Append(domain.Message{ID: "m1", Author: domain.RoleBot, Text: "halo!"})
	s.Append(domain.Message{ID: "m2", Author: domain.RoleUser, Text: "judul topik\nisi lanjutan"})

	snap := s.Snapshot()
	if snap.ID != "t2" {
		t.Fatalf("expected topic id carried over, got %q", snap.ID)
	}
	if snap.Title != "judul topik" {
		t.Fatalf("expected derived title, got %q", snap.Title)
	}
	if len(snap.Messages) != 2 {
		t.Fatalf("expected both messages in snapshot, got %d", len(snap.Messages))
	}
}
