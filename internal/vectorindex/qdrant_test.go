package vectorindex

import (
	"context"
	"testing"
	"time"
)

func TestPayloadRoundTrip(t *testing.T) {
	uploadedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	chunk := Chunk{
		ID:          "point-1",
		Content:     "chunk text",
		DocumentID:  "doc-1",
		ChunkIndex:  2,
		TotalChunks: 5,
		Filename:    "report.pdf",
		FileType:    "pdf",
		FileSize:    4096,
		UploadedAt:  uploadedAt,
		Tags:        []string{"finance", "q3"},
		Description: "Quarterly report",
	}

	payload := payloadFromChunk(chunk)

	// Integer payload values come back from Qdrant as int64.
	meta := make(map[string]any, len(payload))
	for k, v := range payload {
		switch n := v.(type) {
		case int:
			meta[k] = int64(n)
		case int64:
			meta[k] = n
		default:
			meta[k] = v
		}
	}

	got := chunkFromPayload("point-1", meta)
	if got.Content != chunk.Content {
		t.Errorf("content = %q, want %q", got.Content, chunk.Content)
	}
	if got.DocumentID != chunk.DocumentID {
		t.Errorf("document id = %q", got.DocumentID)
	}
	if got.ChunkIndex != 2 || got.TotalChunks != 5 {
		t.Errorf("chunk position = %d/%d", got.ChunkIndex, got.TotalChunks)
	}
	if got.FileSize != 4096 {
		t.Errorf("file size = %d", got.FileSize)
	}
	if !got.UploadedAt.Equal(uploadedAt) {
		t.Errorf("uploaded at = %v, want %v", got.UploadedAt, uploadedAt)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "finance" || got.Tags[1] != "q3" {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.Description != "Quarterly report" {
		t.Errorf("description = %q", got.Description)
	}
}

func TestChunkFromPayloadMissingFields(t *testing.T) {
	got := chunkFromPayload("p", map[string]any{"content": "only text"})

	if got.Content != "only text" {
		t.Errorf("content = %q", got.Content)
	}
	if got.ChunkIndex != 0 {
		t.Errorf("missing chunk index should default to 0, got %d", got.ChunkIndex)
	}
	if !got.UploadedAt.IsZero() {
		t.Errorf("missing uploaded at should stay zero, got %v", got.UploadedAt)
	}
	if got.Tags != nil {
		t.Errorf("missing tags should be nil, got %v", got.Tags)
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "empty", raw: "", expected: nil},
		{name: "single", raw: "finance", expected: []string{"finance"}},
		{name: "multiple", raw: "finance,q3", expected: []string{"finance", "q3"}},
		{name: "spaces trimmed", raw: " finance , q3 ", expected: []string{"finance", "q3"}},
		{name: "empty parts dropped", raw: "finance,,q3,", expected: []string{"finance", "q3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitTags(tt.raw)
			if len(got) != len(tt.expected) {
				t.Fatalf("splitTags(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("splitTags(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestGroupDocuments(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	chunks := []Chunk{
		{DocumentID: "doc-a", Filename: "a.txt", FileType: "txt", UploadedAt: older, TotalChunks: 2},
		{DocumentID: "doc-b", Filename: "b.pdf", FileType: "pdf", UploadedAt: newer, TotalChunks: 1},
		{DocumentID: "doc-a", Filename: "a.txt", FileType: "txt", UploadedAt: older, TotalChunks: 2},
	}

	docs := groupDocuments(chunks)
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	// Newest first.
	if docs[0].ID != "doc-b" || docs[1].ID != "doc-a" {
		t.Errorf("unexpected order: %s, %s", docs[0].ID, docs[1].ID)
	}
	if docs[1].ChunkCount != 2 {
		t.Errorf("doc-a chunk count = %d, want 2", docs[1].ChunkCount)
	}
	if docs[0].ChunkCount != 1 {
		t.Errorf("doc-b chunk count = %d, want 1", docs[0].ChunkCount)
	}
}

func TestGroupDocumentsCountsActualChunks(t *testing.T) {
	// The stored total can disagree with reality after a partial write; the
	// listing reports what is actually present.
	chunks := []Chunk{
		{DocumentID: "doc-a", TotalChunks: 10},
		{DocumentID: "doc-a", TotalChunks: 10},
		{DocumentID: "doc-a", TotalChunks: 10},
	}

	docs := groupDocuments(chunks)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].ChunkCount != 3 {
		t.Errorf("chunk count = %d, want 3", docs[0].ChunkCount)
	}
}

func TestHasAnyTag(t *testing.T) {
	tests := []struct {
		name string
		have []string
		want []string
		ok   bool
	}{
		{name: "no filter", have: []string{"a"}, want: nil, ok: true},
		{name: "one of several matches", have: []string{"a"}, want: []string{"a", "b"}, ok: true},
		{name: "none match", have: []string{"a"}, want: []string{"b", "c"}, ok: false},
		{name: "empty document tags", have: nil, want: []string{"a"}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasAnyTag(tt.have, tt.want); got != tt.ok {
				t.Errorf("HasAnyTag(%v, %v) = %v, want %v", tt.have, tt.want, got, tt.ok)
			}
		})
	}
}

func TestAllDocumentsDegradesWhenBackendDown(t *testing.T) {
	// Nothing listens on this port; the first scroll fails immediately.
	index, err := NewQdrantIndex("http://127.0.0.1:1", "test", 4, nil)
	if err != nil {
		t.Fatalf("failed to create index: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	docs, err := index.AllDocuments(ctx)
	if err != nil {
		t.Fatalf("listing should not propagate backend errors, got %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("docs = %v, want empty", docs)
	}
}
