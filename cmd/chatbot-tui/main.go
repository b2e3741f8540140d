package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/obrolan/chatbot-api/internal/adapters/llm"
	filestore "github.com/obrolan/chatbot-api/internal/adapters/storage/file"
	memstore "github.com/obrolan/chatbot-api/internal/adapters/storage/memory"
	sqlitestore "github.com/obrolan/chatbot-api/internal/adapters/storage/sqlite"
	"github.com/obrolan/chatbot-api/internal/app/chat"
	"github.com/obrolan/chatbot-api/internal/config"
	"github.com/obrolan/chatbot-api/internal/domain"
	"github.com/obrolan/chatbot-api/internal/observability"
	"github.com/obrolan/chatbot-api/internal/ui"
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
		client = llm.NewMockClient()
	case cfg.APIKey == "":
		logger.Error("GEMINI_API_KEY is not set; chat turns will fail")
		client = llm.NewUnconfiguredClient()
	default:
		client, err = llm.NewGeminiClient(ctx, cfg.APIKey)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	}

	var store domain.TopicStore
	switch cfg.StorageBackend {
	case "sqlite":
		s, err := sqlitestore.NewStore(filepath.Join(cfg.DataDir, "topics.db"))
		if err != nil {
			log.Fatalf("error opening sqlite store: %v", err)
		}
		defer s.Close()
		store = s
	case "memory":
		store = memstore.NewStore()
	default:
		s, err := filestore.NewStore(filepath.Join(cfg.DataDir, "topics.json"))
		if err != nil {
			log.Fatalf("error opening topic store: %v", err)
		}
		store = s
	}

	previewDir, err := os.MkdirTemp("", "chatbot-previews-")
	if err != nil {
		log.Fatalf("error creating preview dir: %v", err)
	}

	svc := chat.NewService(llm.NewGateway(client, cfg.Models))
	session := chat.NewSession()

	runErr := ui.Run(ui.NewModel(svc, store, session, previewDir))

	// release remaining previews, then drop the spool dir
	session.Reset()
	_ = os.RemoveAll(previewDir)

	if runErr != nil {
		log.Fatalf("error running UI: %v", runErr)
	}
}
