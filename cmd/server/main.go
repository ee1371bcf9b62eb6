// cmd/server/main.go
package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/productfinder/backend/internal/analyzer"
	"github.com/productfinder/backend/internal/chat"
	"github.com/productfinder/backend/internal/config"
	"github.com/productfinder/backend/internal/llm"
	"github.com/productfinder/backend/internal/metrics"
	"github.com/productfinder/backend/internal/server"
)

func main() {
	// Local development convenience; the file is optional.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	llmProvider, err := llm.NewOpenAI(&cfg.OpenRouter)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	metrics.Register()

	analyzer := analyzer.New(llmProvider)
	relay := chat.New(llmProvider)

	srv := server.New(*cfg, analyzer, relay)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
