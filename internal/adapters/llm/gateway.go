package llm

import (
	"context"
	"strings"

	"github.com/obrolan/chatbot-api/internal/domain"
	"github.com/obrolan/chatbot-api/internal/observability"
)

// Gateway tries an ordered list of candidate models and returns the first
// non-empty response. This linear fallback is the system's only retry policy:
// no backoff, no racing, no per-candidate timeout beyond the transport's.
type Gateway struct {
	client domain.LLMClient
	models []string
}

// NewGateway panics on an empty candidate list: a gateway with nothing to
// call is a wiring bug, not a runtime condition.
func NewGateway(client domain.LLMClient, models []string) *Gateway {
	if len(models) == 0 {
		panic("llm: gateway needs at least one candidate model")
	}
	return &Gateway{client: client, models: models}
}

// Generate implements domain.Generator. The gateway owns the system
// instruction; callers only supply transcript and message.
func (g *Gateway) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	log := observability.LoggerFromContext(ctx)

	if p.SystemInstruction == "" {
		p.SystemInstruction = SystemInstruction
	}
	prompt := ComposePrompt(p)

	var lastErr error
	for _, model := range g.models {
		log.Info("trying model", "model", model)

		text, err := g.client.GenerateText(ctx, model, prompt)
		if err != nil {
			log.Warn("model failed", "model", model, "error", err)
			lastErr = err
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Warn("model returned empty response", "model", model)
			lastErr = domain.ErrEmptyResponse
			continue
		}

		log.Info("model succeeded", "model", model)
		return text, nil
	}

	return "", &domain.ExhaustedError{Attempts: len(g.models), Last: lastErr}
}
