package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/obrolan/chatbot-api/internal/domain"
)

// GeminiClient calls the Gemini API with an API key. One instance serves
// every candidate model; the model name travels per call.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, domain.ErrNoCredential
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// GenerateText implements domain.LLMClient. The prompt arrives fully
// composed; the response comes back as plain text only.
func (g *GeminiClient) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	res, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	return res.Text(), nil
}

// unconfiguredClient stands in when no API key is set. Every call fails with
// ErrNoCredential so the taxonomy mapping stays uniform; the server can still
// boot and report the problem per request instead of crashing.
type unconfiguredClient struct{}

func NewUnconfiguredClient() domain.LLMClient {
	return unconfiguredClient{}
}

func (unconfiguredClient) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	return "", domain.ErrNoCredential
}
