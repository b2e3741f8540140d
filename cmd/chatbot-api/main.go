package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/obrolan/chatbot-api/internal/adapters/http"
	"github.com/obrolan/chatbot-api/internal/adapters/llm"
	"github.com/obrolan/chatbot-api/internal/app/chat"
	"github.com/obrolan/chatbot-api/internal/config"
	"github.com/obrolan/chatbot-api/internal/domain"
	"github.com/obrolan/chatbot-api/internal/observability"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger := observability.Logger()

	var client domain.LLMClient
	switch {
	case cfg.UseMockLLM:
		logger.Info("using mock LLM client")
		client = llm.NewMockClient()
	case cfg.APIKey == "":
		// Boot anyway: every turn fails with the configuration error and
		// the client sees a generic message. The detail stays in the logs.
		logger.Error("GEMINI_API_KEY is not set; chat requests will fail")
		client = llm.NewUnconfiguredClient()
	default:
		client, err = llm.NewGeminiClient(ctx, cfg.APIKey)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
		logger.Info("using Gemini client", "models", cfg.Models)
	}

	svc := chat.NewService(llm.NewGateway(client, cfg.Models))
	handler := httpadapter.NewServer(svc)

	addr := ":" + cfg.Port
	logger.Info("chatbot API listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
