package llm

import (
	"context"
	"fmt"

	"github.com/obrolan/chatbot-api/internal/domain"
)

// MockClient answers without touching the network. Useful for dev and tests.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	return fmt.Sprintf("Halo! Saya %s (mode uji, model %s). Ada yang bisa saya bantu?", domain.BotName, model), nil
}
