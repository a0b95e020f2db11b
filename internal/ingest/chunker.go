package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docqa/internal/service"
	"docqa/internal/vectorindex"
)

// DocumentMeta describes the uploaded file a set of chunks comes from.
type DocumentMeta struct {
	Filename    string
	FileType    string
	FileSize    int64
	Tags        []string
	Description string
}

// Chunker turns extracted text blocks into indexable chunks.
type Chunker struct {
	splitter *Splitter
}

// NewChunker creates a chunker splitting at size runes with the given overlap.
func NewChunker(size, overlap int) *Chunker {
	return &Chunker{splitter: NewSplitter(size, overlap)}
}

// Chunk splits the blocks and stamps each piece with a fresh document id and
// the document metadata. Chunk indices are dense and ordered across blocks.
// It returns service.ErrEmptyDocument when no chunk contains any text.
func (c *Chunker) Chunk(blocks []string, meta DocumentMeta) ([]vectorindex.Chunk, error) {
	var pieces []string
	for _, block := range blocks {
		pieces = append(pieces, c.splitter.Split(block)...)
	}
	if len(pieces) == 0 {
		return nil, fmt.Errorf("%s: %w", meta.Filename, service.ErrEmptyDocument)
	}

	documentID := uuid.New().String()
	uploadedAt := time.Now().UTC()
	fileType := strings.ToLower(strings.TrimPrefix(meta.FileType, "."))

	chunks := make([]vectorindex.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = vectorindex.Chunk{
			ID:          uuid.New().String(),
			Content:     piece,
			DocumentID:  documentID,
			ChunkIndex:  i,
			TotalChunks: len(pieces),
			Filename:    meta.Filename,
			FileType:    fileType,
			FileSize:    meta.FileSize,
			UploadedAt:  uploadedAt,
			Tags:        meta.Tags,
			Description: meta.Description,
		}
	}
	return chunks, nil
}
