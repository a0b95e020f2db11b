package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
)

// Cache stores embedding vectors on disk, keyed by the SHA-256 of the text
// they were computed from. A cache hit is only valid for the same embedding
// model and dimension, so the directory should be scoped per model by the
// caller.
type Cache struct {
	dir        string
	maxEntries int // 0 means unbounded
}

// New creates a cache rooted at dir. maxEntries of 0 disables pruning.
func New(dir string, maxEntries int) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, maxEntries: maxEntries}, nil
}

// Key returns the cache key for a text.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get returns the cached vector for text, or nil if absent. Read failures and
// corrupt entries are treated as misses.
func (c *Cache) Get(text string) []float32 {
	data, err := os.ReadFile(c.path(Key(text)))
	if err != nil {
		return nil
	}

	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil
	}
	return vec
}

// Set stores the vector for text, overwriting any existing entry.
func (c *Cache) Set(text string, vec []float32) error {
	data, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("failed to marshal vector: %w", err)
	}
	if err := os.WriteFile(c.path(Key(text)), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	if c.maxEntries > 0 {
		return c.prune()
	}
	return nil
}

// prune removes the oldest entries until the cache holds at most maxEntries.
// Age is judged by modification time.
func (c *Cache) prune() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to list cache directory: %w", err)
	}

	type cacheFile struct {
		name  string
		mtime int64
	}

	var files []cacheFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, cacheFile{name: entry.Name(), mtime: info.ModTime().UnixNano()})
	}

	if len(files) <= c.maxEntries {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].mtime < files[j].mtime
	})

	for _, f := range files[:len(files)-c.maxEntries] {
		if err := os.Remove(filepath.Join(c.dir, f.name)); err != nil {
			return fmt.Errorf("failed to remove cache entry: %w", err)
		}
	}
	return nil
}

// CachedEmbedder wraps an Embedder with the disk cache. Only texts missing
// from the cache are sent to the underlying embedder.
type CachedEmbedder struct {
	embedder llm.Embedder
	cache    *Cache
}

// NewCachedEmbedder wraps embedder with cache.
func NewCachedEmbedder(embedder llm.Embedder, cache *Cache) *CachedEmbedder {
	return &CachedEmbedder{embedder: embedder, cache: cache}
}

// EmbedTexts returns one vector per input text in input order. Cache hits are
// served from disk; the remaining texts go to the underlying embedder in a
// single batch, and the new vectors are written back to the cache.
func (e *CachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	result := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if vec := e.cache.Get(text); vec != nil {
			result[i] = vec
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return result, nil
	}

	vecs, err := e.embedder.EmbedTexts(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missing) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(missing), len(vecs))
	}

	logger := contextutil.LoggerFromContext(ctx)
	for j, vec := range vecs {
		result[missingIdx[j]] = vec
		if err := e.cache.Set(missing[j], vec); err != nil {
			// A failed cache write only costs a recompute next time.
			logger.Warn("failed to cache embedding", slog.String("error", err.Error()))
		}
	}

	return result, nil
}
