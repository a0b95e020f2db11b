package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"docqa/internal/answer"
	"docqa/internal/config"
	"docqa/internal/embedcache"
	"docqa/internal/extract"
	"docqa/internal/http"
	"docqa/internal/ingest"
	"docqa/internal/llm"
	"docqa/internal/storage"
	"docqa/internal/vectorindex"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize conversation database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	conversationRepo := storage.NewConversationRepo(db)

	// Build the embedding stack: provider client wrapped in the disk cache
	embeddingProvider, err := llm.ParseProvider(cfg.EmbeddingProvider)
	if err != nil {
		log.Fatalf("Invalid embedding provider: %v", err)
	}
	baseEmbedder, err := llm.NewEmbedder(embeddingProvider, cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.VectorSize)
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}

	cache, err := embedcache.New(cfg.CacheDir, cfg.CacheMaxEntries)
	if err != nil {
		log.Fatalf("Failed to initialize embedding cache: %v", err)
	}
	embedder := embedcache.NewCachedEmbedder(baseEmbedder, cache)
	slog.Info("Embedding client ready", "provider", cfg.EmbeddingProvider, "model", cfg.EmbeddingModelName, "cache_dir", cfg.CacheDir)

	// Initialize Qdrant index
	ctx := context.Background()

	index, err := vectorindex.NewQdrantIndex(cfg.QdrantURL, cfg.QdrantCollection, cfg.VectorSize, embedder)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := index.EnsureCollection(ctx); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.VectorSize)

	// Create the ingestion pipeline
	pipeline := ingest.NewPipeline(
		extract.NewExtractor(),
		ingest.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		index,
	)

	// Create the chat client and answer generator
	llmProvider, err := llm.ParseProvider(cfg.LLMProvider)
	if err != nil {
		log.Fatalf("Invalid LLM provider: %v", err)
	}
	chatClient, err := llm.NewChatClient(llmProvider, cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	if err != nil {
		log.Fatalf("Failed to create chat client: %v", err)
	}
	generator := answer.NewGenerator(chatClient, cfg.Temperature, cfg.MaxTokens)
	slog.Info("Answer generator initialized", "provider", cfg.LLMProvider, "model", cfg.LLMModelName)

	// Create router with dependencies
	deps := &http.Deps{
		Index:         index,
		Pipeline:      pipeline,
		Generator:     generator,
		Conversations: conversationRepo,
		DB:            db,
		UploadDir:     cfg.UploadDir,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
