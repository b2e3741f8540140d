package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/obrolan/chatbot-api/internal/app/chat"
	"github.com/obrolan/chatbot-api/internal/domain"
)

type fakeGenerator struct {
	reply  string
	err    error
	calls  int
	prompt domain.Prompt
}

func (f *fakeGenerator) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	f.calls++
	f.prompt = p
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestSubmitTurnRejectsEmptyTurn(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := chat.NewService(gen)

	_, err := svc.SubmitTurn(context.Background(), chat.SubmitTurnInput{Text: "   "})
	if !errors.Is(err, domain.ErrEmptyTurn) {
		t.Fatalf("expected ErrEmptyTurn, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("expected no backend call, got %d", gen.calls)
	}
}

func TestSubmitTurnAttachmentOnlyIsValid(t *testing.T) {
	gen := &fakeGenerator{reply: "diterima"}
	svc := chat.NewService(gen)

	out, err := svc.SubmitTurn(context.Background(), chat.SubmitTurnInput{
		Attachment: &domain.AttachmentRef{Name: "foto.png", SizeBytes: 2048, MimeType: "image/png"},
	})
	if err != nil {
		t.Fatalf("SubmitTurn failed: %v", err)
	}
	if out.BotMessage.Text != "diterima" {
		t.Fatalf("unexpected reply: %q", out.BotMessage.Text)
	}
	if !strings.Contains(gen.prompt.NewMessage, "User mengirim file: foto.png (2.0 KB, tipe: image/png)") {
		t.Fatalf("attachment metadata missing from prompt: %q", gen.prompt.NewMessage)
	}
}

func TestSubmitTurnSanitizesReply(t *testing.T) {
	gen := &fakeGenerator{reply: "  Ini **jawaban** dengan em—dash  "}
	svc := chat.NewService(gen)

	out, err := svc.SubmitTurn(context.Background(), chat.SubmitTurnInput{Text: "halo"})
	if err != nil {
		t.Fatalf("SubmitTurn failed: %v", err)
	}
	if out.BotMessage.Text != "Ini jawaban dengan em-dash" {
		t.Fatalf("reply not sanitized: %q", out.BotMessage.Text)
	}
	if out.BotMessage.Author != domain.RoleBot {
		t.Fatalf("expected bot author, got %q", out.BotMessage.Author)
	}
	if out.BotMessage.ID == "" {
		t.Fatal("expected a minted message id")
	}
}

func TestSubmitTurnFlattensHistory(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := chat.NewService(gen)

	history := []domain.Message{
		{Author: domain.RoleUser, Text: "halo"},
		{Author: domain.RoleBot, Text: "hai, ada yang bisa dibantu?"},
	}
	if _, err := svc.SubmitTurn(context.Background(), chat.SubmitTurnInput{
		Text:    "lanjut",
		History: history,
	}); err != nil {
		t.Fatalf("SubmitTurn failed: %v", err)
	}

	want := "User: halo\nChatBot AI: hai, ada yang bisa dibantu?"
	if gen.prompt.Transcript != want {
		t.Fatalf("transcript = %q, want %q", gen.prompt.Transcript, want)
	}
}

func TestSubmitTurnTranscriptOverride(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := chat.NewService(gen)

	if _, err := svc.SubmitTurn(context.Background(), chat.SubmitTurnInput{
		Text:       "lanjut",
		History:    []domain.Message{{Author: domain.RoleUser, Text: "diabaikan"}},
		Transcript: "User: dari klien",
	}); err != nil {
		t.Fatalf("SubmitTurn failed: %v", err)
	}
	if gen.prompt.Transcript != "User: dari klien" {
		t.Fatalf("expected verbatim transcript, got %q", gen.prompt.Transcript)
	}
}

func TestUserFacingMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"validation", domain.ErrEmptyTurn, "Tulis pesan atau lampirkan file terlebih dahulu."},
		{"credential", &domain.ExhaustedError{Attempts: 1, Last: domain.ErrNoCredential},
			"Layanan sedang tidak tersedia. Silakan coba lagi nanti."},
		{"api key", &domain.ExhaustedError{Attempts: 1, Last: errors.New("API_KEY_INVALID: bad key")},
			"API key tidak valid. Silakan periksa konfigurasi API key."},
		{"quota", &domain.ExhaustedError{Attempts: 2, Last: errors.New("quota exceeded for project")},
			"Quota API telah habis. Silakan coba lagi nanti."},
		{"network", errors.New("network is unreachable"),
			"Masalah koneksi. Silakan periksa koneksi internet Anda."},
		{"fallback", errors.New("something odd"),
			"Maaf, terjadi kesalahan. Silakan coba lagi."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := chat.UserFacingMessage(tc.err); got != tc.want {
				t.Fatalf("UserFacingMessage = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUserFacingMessageNeverLeaksCredentialDetail(t *testing.T) {
	err := &domain.ExhaustedError{Attempts: 1, Last: domain.ErrNoCredential}
	msg := chat.UserFacingMessage(err)
	if strings.Contains(strings.ToLower(msg), "credential") || strings.Contains(msg, "GEMINI") {
		t.Fatalf("credential detail leaked: %q", msg)
	}
}
