package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"newsroomai/internal/analysis"
	"newsroomai/internal/app"
	"newsroomai/internal/auth"
	"newsroomai/internal/config"
	"newsroomai/internal/extract"
	"newsroomai/internal/server"
	"newsroomai/internal/store"
	"newsroomai/internal/util"
	"newsroomai/pkg/ai"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	dataStore, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	var gen ai.TextGenerator
	switch strings.ToLower(cfg.LLMProvider) {
	case "ollama":
		gen = ai.NewOllamaGenerator(cfg.LLMBaseURL, cfg.LLMModel)
	default:
		gen = ai.NewOpenAICompatGenerator(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	}

	appCore, err := app.New(app.Config{
		Store:    dataStore,
		Analyzer: analysis.NewAnalyzer(gen),
		Rewriter: analysis.NewRewriter(gen),
		Fetcher:  extract.NewFetcher(),
		Tokens:   auth.NewTokenManager(cfg.SecretKey, time.Duration(cfg.TokenTTLMinutes)*time.Minute),
		DevMode:  cfg.DevMode,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer := server.New(server.Config{App: appCore})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "addr", addr, "provider", cfg.LLMProvider, "model", cfg.LLMModel)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
