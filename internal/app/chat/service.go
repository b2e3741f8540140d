package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/obrolan/chatbot-api/internal/domain"
	"github.com/obrolan/chatbot-api/internal/observability"
	"github.com/obrolan/chatbot-api/internal/sanitize"
)

// Service is the turn orchestrator. It is stateless: callers own the active
// session and are responsible for appending messages and persisting topics.
type Service struct {
	generator domain.Generator
	now       func() time.Time
}

func NewService(generator domain.Generator) *Service {
	return &Service{
		generator: generator,
		now:       time.Now,
	}
}

type SubmitTurnInput struct {
	Text       string
	Attachment *domain.AttachmentRef

	// History is flattened by the orchestrator. Transcript, when set, is
	// used verbatim instead (HTTP clients send it pre-flattened).
	History    []domain.Message
	Transcript string
}

type SubmitTurnOutput struct {
	BotMessage domain.Message
}

// SubmitTurn validates the turn, composes the prompt, calls the generation
// backend and returns a sanitized bot message. Failures come back as taxonomy
// errors; no backend call happens for an invalid turn.
func (s *Service) SubmitTurn(ctx context.Context, in SubmitTurnInput) (*SubmitTurnOutput, error) {
	if strings.TrimSpace(in.Text) == "" && in.Attachment == nil {
		return nil, domain.ErrEmptyTurn
	}

	log := observability.LoggerFromContext(ctx)

	transcript := in.Transcript
	if transcript == "" {
		transcript = FlattenTranscript(in.History)
	}

	message := OutgoingText(in.Text, in.Attachment)

	log.Info("submitting turn",
		"chars", len(message),
		"history_messages", len(in.History),
		"has_attachment", in.Attachment != nil,
	)

	text, err := s.generator.Generate(ctx, domain.Prompt{
		Transcript: transcript,
		NewMessage: message,
	})
	if err != nil {
		log.Error("generation failed", "error", err)
		return nil, err
	}

	bot := domain.Message{
		ID:        domain.MessageID(domain.NewID()),
		Text:      sanitize.Clean(text),
		Author:    domain.RoleBot,
		CreatedAt: s.now(),
	}

	log.Info("turn completed", "reply_chars", len(bot.Text))

	return &SubmitTurnOutput{BotMessage: bot}, nil
}

// FlattenTranscript renders prior messages as "<Speaker>: <text>" lines in
// chronological order. Attachments do not change the transcript.
func FlattenTranscript(msgs []domain.Message) string {
	if len(msgs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		speaker := "User"
		if m.Author == domain.RoleBot {
			speaker = domain.BotName
		}
		lines = append(lines, speaker+": "+m.Text)
	}
	return strings.Join(lines, "\n")
}

// OutgoingText folds attachment metadata into the message text. The file
// itself is never read; only name, size and type travel to the backend.
func OutgoingText(text string, att *domain.AttachmentRef) string {
	if att == nil {
		return text
	}
	info := fmt.Sprintf("User mengirim file: %s (%.1f KB, tipe: %s)",
		att.Name, float64(att.SizeBytes)/1024, att.MimeType)
	if text == "" {
		return info
	}
	return text + "\n\n" + info
}

// UserFacingMessage maps a taxonomy error to the localized text shown as a
// bot-authored message. Raw errors and credential detail never pass through.
func UserFacingMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, domain.ErrEmptyTurn) {
		return "Tulis pesan atau lampirkan file terlebih dahulu."
	}
	if errors.Is(err, domain.ErrNoCredential) {
		return "Layanan sedang tidak tersedia. Silakan coba lagi nanti."
	}

	detail := err.Error()
	switch {
	case strings.Contains(detail, "API_KEY_INVALID") || strings.Contains(detail, "API key"):
		return "API key tidak valid. Silakan periksa konfigurasi API key."
	case strings.Contains(detail, "quota") || strings.Contains(detail, "Quota"):
		return "Quota API telah habis. Silakan coba lagi nanti."
	case strings.Contains(detail, "network") || strings.Contains(detail, "connection"):
		return "Masalah koneksi. Silakan periksa koneksi internet Anda."
	default:
		return "Maaf, terjadi kesalahan. Silakan coba lagi."
	}
}
