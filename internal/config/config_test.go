package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

// setRequired sets the minimum environment for Load to succeed, pointing all
// data directories into a temp dir.
func setRequired(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VECTOR_SIZE", "1536")
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("EMBEDDING_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("DB_PATH", filepath.Join(dir, "db", "docqa.db"))
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LLMProvider != "openai" {
		t.Errorf("LLMProvider = %q", cfg.LLMProvider)
	}
	if cfg.QdrantURL != "http://localhost:6333" {
		t.Errorf("QdrantURL = %q", cfg.QdrantURL)
	}
	if cfg.QdrantCollection != "documents" {
		t.Errorf("QdrantCollection = %q", cfg.QdrantCollection)
	}
	if cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 200 {
		t.Errorf("chunking = %d/%d, want 1000/200", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %f", cfg.Temperature)
	}
	if cfg.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d", cfg.MaxTokens)
	}
	if cfg.VectorSize != 1536 {
		t.Errorf("VectorSize = %d", cfg.VectorSize)
	}
	if cfg.APIPort != "8000" {
		t.Errorf("APIPort = %q", cfg.APIPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.CacheMaxEntries != 0 {
		t.Errorf("CacheMaxEntries = %d, want unbounded default", cfg.CacheMaxEntries)
	}
}

func TestLoadMissingVectorSize(t *testing.T) {
	setRequired(t)
	t.Setenv("VECTOR_SIZE", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when VECTOR_SIZE is missing")
	}
}

func TestLoadInvalidVectorSize(t *testing.T) {
	setRequired(t)

	for _, bad := range []string{"abc", "0", "-5"} {
		t.Run(bad, func(t *testing.T) {
			t.Setenv("VECTOR_SIZE", bad)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for VECTOR_SIZE=%q", bad)
			}
		})
	}
}

func TestLoadOverlapMustBeSmallerThanSize(t *testing.T) {
	setRequired(t)
	t.Setenv("CHUNK_SIZE", "100")
	t.Setenv("CHUNK_OVERLAP", "100")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when overlap equals chunk size")
	}
	if !strings.Contains(err.Error(), "CHUNK_OVERLAP") {
		t.Errorf("error should name the offending variable, got %v", err)
	}
}

func TestLoadLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
		wantErr  bool
	}{
		{level: "debug", expected: slog.LevelDebug},
		{level: "info", expected: slog.LevelInfo},
		{level: "warn", expected: slog.LevelWarn},
		{level: "error", expected: slog.LevelError},
		{level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			setRequired(t)
			t.Setenv("LOG_LEVEL", tt.level)

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.LogLevel != tt.expected {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.expected)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_MODEL", "llama3")
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("CHUNK_OVERLAP", "50")
	t.Setenv("EMBEDDING_CACHE_MAX_ENTRIES", "1000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLMProvider != "ollama" || cfg.LLMModelName != "llama3" {
		t.Errorf("LLM settings = %q/%q", cfg.LLMProvider, cfg.LLMModelName)
	}
	if cfg.ChunkSize != 500 || cfg.ChunkOverlap != 50 {
		t.Errorf("chunking = %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.CacheMaxEntries != 1000 {
		t.Errorf("CacheMaxEntries = %d", cfg.CacheMaxEntries)
	}
}

func TestLoadEmbeddingKeyFallsBackToLLMKey(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_API_KEY", "shared-key")
	t.Setenv("EMBEDDING_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.EmbeddingAPIKey != "shared-key" {
		t.Errorf("EmbeddingAPIKey = %q, want fallback to LLM key", cfg.EmbeddingAPIKey)
	}
}
