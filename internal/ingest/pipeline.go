package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/extract"
	"docqa/internal/service"
	"docqa/internal/vectorindex"
)

// Pipeline runs the ingestion flow for one uploaded file: extract text,
// chunk it, and store the chunks in the index.
type Pipeline struct {
	extractor *extract.Extractor
	chunker   *Chunker
	index     vectorindex.Index
}

// NewPipeline wires the ingestion stages together.
func NewPipeline(extractor *extract.Extractor, chunker *Chunker, index vectorindex.Index) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		chunker:   chunker,
		index:     index,
	}
}

// Ingest processes the file at path and returns the stored chunks. The
// filename (not the path) determines the extraction format and is recorded
// on every chunk.
func (p *Pipeline) Ingest(ctx context.Context, path, filename string, tags []string, description string) ([]vectorindex.Chunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	blocks, err := p.extractor.Extract(path, filename)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, service.WrapError(err, "failed to stat uploaded file")
	}

	chunks, err := p.chunker.Chunk(blocks, DocumentMeta{
		Filename:    filename,
		FileType:    strings.ToLower(filepath.Ext(filename)),
		FileSize:    info.Size(),
		Tags:        tags,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	stored, err := p.index.Insert(ctx, chunks)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "document ingested",
		"filename", filename,
		"document_id", chunks[0].DocumentID,
		"chunks", stored,
	)
	return chunks, nil
}
