package vectorindex

import "context"

//go:generate mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks

// Index stores and searches document chunks.
type Index interface {
	// Insert embeds and stores the given chunks. It returns the number of
	// chunks stored: len(chunks) on success, 0 on failure.
	Insert(ctx context.Context, chunks []Chunk) (int, error)

	// Search returns the k most similar chunks to the query, optionally
	// filtered by document id and file type (empty string means no filter).
	Search(ctx context.Context, query string, k int, documentID, fileType string) ([]ScoredChunk, error)

	// SearchDocuments returns documents whose chunks match the query,
	// deduplicated by document. fileType and tags restrict results when set
	// (a document matches when it carries any of the requested tags). An
	// empty query returns no results.
	SearchDocuments(ctx context.Context, query string, k int, fileType string, tags []string) ([]Document, error)

	// AllDocuments lists every document in the index.
	AllDocuments(ctx context.Context) ([]Document, error)

	// DocumentByID returns a single document, or ErrNotFound.
	DocumentByID(ctx context.Context, documentID string) (Document, error)

	// DeleteDocument removes all chunks of a document. It returns the number
	// of chunks removed; 0 with no error means the document did not exist.
	DeleteDocument(ctx context.Context, documentID string) (int, error)

	// UpdateDocumentMetadata applies the update to every chunk of the
	// document. It reports whether any chunk was updated.
	UpdateDocumentMetadata(ctx context.Context, documentID string, update MetadataUpdate) (bool, error)

	// DocumentContent reassembles the full text of a document from its
	// chunks in chunk order.
	DocumentContent(ctx context.Context, documentID string) (string, error)

	// Reset drops and recreates the collection, deleting all documents.
	Reset(ctx context.Context) error

	// Stats reports collection-level statistics.
	Stats(ctx context.Context) (CollectionStats, error)
}
