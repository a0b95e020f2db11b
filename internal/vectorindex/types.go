package vectorindex

import "time"

// Chunk is one indexed piece of a document. Document-level metadata is
// denormalized onto every chunk so a search hit carries everything needed to
// present its source without a second lookup.
type Chunk struct {
	ID          string
	Content     string
	DocumentID  string
	ChunkIndex  int
	TotalChunks int
	Filename    string
	FileType    string
	FileSize    int64
	UploadedAt  time.Time
	Tags        []string
	Description string
}

// Document is the document-level view reconstructed from its chunks.
type Document struct {
	ID          string    `json:"document_id"`
	Filename    string    `json:"filename"`
	FileType    string    `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ChunkCount  int       `json:"chunk_count"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
}

// ScoredChunk is a search hit with its similarity score.
type ScoredChunk struct {
	Chunk Chunk
	Score float32
}

// MetadataUpdate carries optional document metadata changes. A nil field is
// left untouched.
type MetadataUpdate struct {
	Tags        *[]string
	Description *string
}

// CollectionStats reports the state of the index.
type CollectionStats struct {
	Collection   string `json:"collection"`
	TotalChunks  int    `json:"total_chunks"`
	VectorSize   int    `json:"vector_size"`
	DistanceFunc string `json:"distance"`
}
