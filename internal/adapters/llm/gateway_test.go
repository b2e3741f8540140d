package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrolan/chatbot-api/internal/domain"
)

// scriptedClient returns one scripted result per call, recording the order
// of models attempted.
type scriptedClient struct {
	replies []string
	errs    []error
	calls   []string
}

func (c *scriptedClient) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	i := len(c.calls)
	c.calls = append(c.calls, model)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.replies) {
		return c.replies[i], nil
	}
	return "", errors.New("unscripted call")
}

func TestGatewayFirstCandidateWins(t *testing.T) {
	client := &scriptedClient{replies: []string{"jawaban"}}
	gw := NewGateway(client, []string{"model-a", "model-b"})

	text, err := gw.Generate(context.Background(), domain.Prompt{NewMessage: "halo"})
	require.NoError(t, err)
	assert.Equal(t, "jawaban", text)
	assert.Equal(t, []string{"model-a"}, client.calls)
}

func TestGatewayFallsBackOnErrorAndEmpty(t *testing.T) {
	client := &scriptedClient{
		replies: []string{"", "   ", "akhirnya"},
		errs:    []error{errors.New("boom"), nil, nil},
	}
	gw := NewGateway(client, []string{"model-a", "model-b", "model-c"})

	text, err := gw.Generate(context.Background(), domain.Prompt{NewMessage: "halo"})
	require.NoError(t, err)
	assert.Equal(t, "akhirnya", text)
	assert.Equal(t, []string{"model-a", "model-b", "model-c"}, client.calls)
}

func TestGatewayExhaustionWrapsLastError(t *testing.T) {
	lastErr := errors.New("quota exceeded")
	client := &scriptedClient{
		errs: []error{errors.New("transport down"), lastErr},
	}
	gw := NewGateway(client, []string{"model-a", "model-b"})

	_, err := gw.Generate(context.Background(), domain.Prompt{NewMessage: "halo"})
	require.Error(t, err)

	var exhausted *domain.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Attempts)
	assert.ErrorIs(t, err, lastErr)

	// every candidate attempted exactly once, in list order
	assert.Equal(t, []string{"model-a", "model-b"}, client.calls)
}

func TestGatewayEmptyEverywhereReportsEmptyResponse(t *testing.T) {
	client := &scriptedClient{replies: []string{"", ""}}
	gw := NewGateway(client, []string{"model-a", "model-b"})

	_, err := gw.Generate(context.Background(), domain.Prompt{NewMessage: "halo"})
	assert.ErrorIs(t, err, domain.ErrEmptyResponse)
}

func TestComposePromptUniformContract(t *testing.T) {
	p := domain.Prompt{
		SystemInstruction: "SYSTEM",
		Transcript:        "User: halo\nChatBot AI: hai",
		NewMessage:        "apa kabar?",
	}
	got := ComposePrompt(p)

	require.True(t, strings.HasPrefix(got, "SYSTEM\n\n"))
	assert.Contains(t, got, "Percakapan sebelumnya:\nUser: halo\nChatBot AI: hai\n\n")
	assert.True(t, strings.HasSuffix(got, "User: apa kabar?\n\nChatBot AI:"))

	// transcript block disappears entirely when there is no history
	p.Transcript = ""
	assert.Equal(t, "SYSTEM\n\nUser: apa kabar?\n\nChatBot AI:", ComposePrompt(p))
}
