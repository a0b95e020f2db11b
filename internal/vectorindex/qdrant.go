package vectorindex

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
	"docqa/internal/service"
)

const scrollBatchSize = 256

// Payload field names. Document metadata is stored on every chunk.
const (
	fieldContent     = "content"
	fieldDocumentID  = "document_id"
	fieldFilename    = "filename"
	fieldChunkIndex  = "chunk_index"
	fieldTotalChunks = "total_chunks"
	fieldUploadedAt  = "uploaded_at"
	fieldFileSize    = "file_size"
	fieldFileType    = "file_type"
	fieldTags        = "tags"
	fieldDescription = "description"
)

// QdrantIndex implements Index backed by a Qdrant collection.
type QdrantIndex struct {
	client     *qdrant.Client
	collection string
	vectorSize int
	embedder   llm.Embedder
}

// NewQdrantIndex creates an index client. urlStr should be in the format
// "http://host:port" (e.g., "http://localhost:6333"). The gRPC port
// (typically 6334) is derived from the HTTP port.
func NewQdrantIndex(urlStr, collection string, vectorSize int, embedder llm.Embedder) (*QdrantIndex, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334 // Default gRPC port
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			// gRPC port is typically HTTP port + 1
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantIndex{
		client:     client,
		collection: collection,
		vectorSize: vectorSize,
		embedder:   embedder,
	}, nil
}

// EnsureCollection creates the collection if missing, and validates the
// vector size if it already exists.
func (s *QdrantIndex) EnsureCollection(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("%w: failed to check collection existence: %w", service.ErrVectorStore, err)
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", s.collection, "vector_size", s.vectorSize)
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(s.vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create collection: %w", service.ErrVectorStore, err)
		}
		return nil
	}

	info, err := s.client.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("%w: failed to get collection info: %w", service.ErrVectorStore, err)
	}

	config := info.Config
	if config == nil || config.Params == nil {
		return fmt.Errorf("collection config is invalid")
	}

	vectorsConfig := config.Params.GetVectorsConfig()
	if vectorsConfig == nil {
		return fmt.Errorf("collection vectors config is invalid")
	}

	params := vectorsConfig.GetParams()
	if params == nil {
		return fmt.Errorf("collection vector params are invalid")
	}

	if int(params.Size) != s.vectorSize {
		return fmt.Errorf("collection vector size mismatch: expected %d, got %d", s.vectorSize, params.Size)
	}

	logger.InfoContext(ctx, "collection validated", "collection", s.collection, "vector_size", s.vectorSize)
	return nil
}

// Insert embeds the chunks and upserts them into the collection. On any
// failure nothing is reported as stored, though an upsert that fails midway
// server-side may leave partial chunks behind; re-uploading the document
// overwrites them.
func (s *QdrantIndex) Insert(ctx context.Context, chunks []Chunk) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to embed chunks: %w", service.ErrExternalService, err)
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i, chunk := range chunks {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ID),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(payloadFromChunk(chunk)),
		})
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", s.collection, "count", len(points), "error", err)
		return 0, fmt.Errorf("%w: failed to upsert points: %w", service.ErrVectorStore, err)
	}

	logger.InfoContext(ctx, "upserted points", "collection", s.collection, "count", len(points))
	return len(chunks), nil
}

// Search returns the k chunks most similar to the query. documentID and
// fileType restrict results when non-empty.
func (s *QdrantIndex) Search(ctx context.Context, query string, k int, documentID, fileType string) ([]ScoredChunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	vectors, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to embed query: %w", service.ErrExternalService, err)
	}

	var conditions []*qdrant.Condition
	if documentID != "" {
		conditions = append(conditions, qdrant.NewMatch(fieldDocumentID, documentID))
	}
	if fileType != "" {
		conditions = append(conditions, qdrant.NewMatch(fieldFileType, fileType))
	}

	limit := uint64(k)
	queryReq := &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vectors[0]...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if len(conditions) > 0 {
		queryReq.Filter = &qdrant.Filter{Must: conditions}
	}

	scoredPoints, err := s.client.Query(ctx, queryReq)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "collection", s.collection, "k", k, "error", err)
		return nil, fmt.Errorf("%w: failed to search points: %w", service.ErrVectorStore, err)
	}

	results := make([]ScoredChunk, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		pointID := ""
		if point.Id != nil {
			pointID = point.Id.GetUuid()
		}
		results = append(results, ScoredChunk{
			Chunk: chunkFromPayload(pointID, convertPayloadToMap(point.Payload)),
			Score: point.Score,
		})
	}

	logger.InfoContext(ctx, "search completed", "collection", s.collection, "k", k, "results", len(results))
	return results, nil
}

// SearchDocuments returns the documents whose chunks best match the query,
// deduplicated by document and ordered by best chunk score. fileType becomes
// a server-side filter; tags are matched client-side against the comma-joined
// payload field, keeping documents that carry any of the requested tags. An
// empty query returns no results; callers that want a metadata-only listing
// should filter AllDocuments instead.
func (s *QdrantIndex) SearchDocuments(ctx context.Context, query string, k int, fileType string, tags []string) ([]Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	// Over-fetch chunks so k distinct documents can usually be filled.
	hits, err := s.Search(ctx, query, k*scrollOverfetch, "", fileType)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var docs []Document
	for _, hit := range hits {
		if seen[hit.Chunk.DocumentID] {
			continue
		}
		seen[hit.Chunk.DocumentID] = true
		if !HasAnyTag(hit.Chunk.Tags, tags) {
			continue
		}
		docs = append(docs, documentFromChunk(hit.Chunk))
		if len(docs) == k {
			break
		}
	}

	// Chunk counts are not recoverable from search hits alone.
	for i, doc := range docs {
		full, err := s.DocumentByID(ctx, doc.ID)
		if err != nil {
			continue
		}
		docs[i] = full
	}

	return docs, nil
}

const scrollOverfetch = 4

// AllDocuments lists every document in the index, newest first. Backend
// failures degrade to an empty listing: the error is logged, not returned.
func (s *QdrantIndex) AllDocuments(ctx context.Context) ([]Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	points, err := s.scrollPoints(ctx, nil)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "collection", s.collection, "error", err)
		return []Document{}, nil
	}
	return groupDocuments(chunksFromPoints(points)), nil
}

// DocumentByID returns one document, or service.ErrNotFound.
func (s *QdrantIndex) DocumentByID(ctx context.Context, documentID string) (Document, error) {
	points, err := s.scrollPoints(ctx, documentFilter(documentID))
	if err != nil {
		return Document{}, err
	}
	if len(points) == 0 {
		return Document{}, fmt.Errorf("document %s: %w", documentID, service.ErrNotFound)
	}

	docs := groupDocuments(chunksFromPoints(points))
	return docs[0], nil
}

// DeleteDocument removes every chunk of the document and returns how many
// chunks were removed.
func (s *QdrantIndex) DeleteDocument(ctx context.Context, documentID string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	ids, err := s.scrollIDs(ctx, documentFilter(documentID))
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	_, err = s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collection,
		Points:         qdrant.NewPointsSelector(ids...),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete points", "collection", s.collection, "count", len(ids), "error", err)
		return 0, fmt.Errorf("%w: failed to delete points: %w", service.ErrVectorStore, err)
	}

	logger.InfoContext(ctx, "deleted document", "collection", s.collection, "document_id", documentID, "chunks", len(ids))
	return len(ids), nil
}

// UpdateDocumentMetadata merges the given metadata into every chunk of the
// document. It reports whether the document existed.
func (s *QdrantIndex) UpdateDocumentMetadata(ctx context.Context, documentID string, update MetadataUpdate) (bool, error) {
	ids, err := s.scrollIDs(ctx, documentFilter(documentID))
	if err != nil {
		return false, err
	}
	if len(ids) == 0 {
		return false, nil
	}

	payload := make(map[string]any)
	if update.Tags != nil {
		payload[fieldTags] = joinTags(*update.Tags)
	}
	if update.Description != nil {
		payload[fieldDescription] = *update.Description
	}
	if len(payload) == 0 {
		return true, nil
	}

	_, err = s.client.SetPayload(ctx, &qdrant.SetPayloadPoints{
		CollectionName: s.collection,
		Payload:        qdrant.NewValueMap(payload),
		PointsSelector: qdrant.NewPointsSelector(ids...),
	})
	if err != nil {
		return false, fmt.Errorf("%w: failed to set payload: %w", service.ErrVectorStore, err)
	}
	return true, nil
}

// DocumentContent reassembles the document's full text in chunk order.
func (s *QdrantIndex) DocumentContent(ctx context.Context, documentID string) (string, error) {
	points, err := s.scrollPoints(ctx, documentFilter(documentID))
	if err != nil {
		return "", err
	}
	if len(points) == 0 {
		return "", fmt.Errorf("document %s: %w", documentID, service.ErrNotFound)
	}

	chunks := chunksFromPoints(points)
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})

	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = chunk.Content
	}
	return strings.Join(parts, "\n\n"), nil
}

// Reset drops the collection and recreates it empty.
func (s *QdrantIndex) Reset(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("%w: failed to delete collection: %w", service.ErrVectorStore, err)
	}
	if err := s.EnsureCollection(ctx); err != nil {
		return err
	}

	logger.InfoContext(ctx, "collection reset", "collection", s.collection)
	return nil
}

// Stats reports the chunk count and collection configuration.
func (s *QdrantIndex) Stats(ctx context.Context) (CollectionStats, error) {
	exact := true
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
		Exact:          &exact,
	})
	if err != nil {
		return CollectionStats{}, fmt.Errorf("%w: failed to count points: %w", service.ErrVectorStore, err)
	}

	return CollectionStats{
		Collection:   s.collection,
		TotalChunks:  int(count),
		VectorSize:   s.vectorSize,
		DistanceFunc: qdrant.Distance_Cosine.String(),
	}, nil
}

func documentFilter(documentID string) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{qdrant.NewMatch(fieldDocumentID, documentID)},
	}
}

// scrollPoints pages through all points matching the filter. Points are
// deduplicated by id so an offset that is re-included in the next page does
// not repeat.
func (s *QdrantIndex) scrollPoints(ctx context.Context, filter *qdrant.Filter) ([]*qdrant.RetrievedPoint, error) {
	var points []*qdrant.RetrievedPoint
	seen := make(map[string]bool)
	limit := uint32(scrollBatchSize)

	var offset *qdrant.PointId
	for {
		batch, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: s.collection,
			Filter:         filter,
			Limit:          &limit,
			Offset:         offset,
			WithPayload:    qdrant.NewWithPayload(true),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scroll points: %w", service.ErrVectorStore, err)
		}
		if len(batch) == 0 {
			break
		}

		added := 0
		for _, point := range batch {
			id := point.Id.GetUuid()
			if seen[id] {
				continue
			}
			seen[id] = true
			points = append(points, point)
			added++
		}
		if added == 0 || len(batch) < scrollBatchSize {
			break
		}
		offset = batch[len(batch)-1].Id
	}

	return points, nil
}

func (s *QdrantIndex) scrollIDs(ctx context.Context, filter *qdrant.Filter) ([]*qdrant.PointId, error) {
	points, err := s.scrollPoints(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]*qdrant.PointId, 0, len(points))
	for _, point := range points {
		ids = append(ids, point.Id)
	}
	return ids, nil
}

func chunksFromPoints(points []*qdrant.RetrievedPoint) []Chunk {
	chunks := make([]Chunk, 0, len(points))
	for _, point := range points {
		pointID := ""
		if point.Id != nil {
			pointID = point.Id.GetUuid()
		}
		chunks = append(chunks, chunkFromPayload(pointID, convertPayloadToMap(point.Payload)))
	}
	return chunks
}

func payloadFromChunk(chunk Chunk) map[string]any {
	return map[string]any{
		fieldContent:     chunk.Content,
		fieldDocumentID:  chunk.DocumentID,
		fieldFilename:    chunk.Filename,
		fieldChunkIndex:  chunk.ChunkIndex,
		fieldTotalChunks: chunk.TotalChunks,
		fieldUploadedAt:  chunk.UploadedAt.UTC().Format(time.RFC3339),
		fieldFileSize:    chunk.FileSize,
		fieldFileType:    chunk.FileType,
		fieldTags:        joinTags(chunk.Tags),
		fieldDescription: chunk.Description,
	}
}

func chunkFromPayload(id string, meta map[string]any) Chunk {
	chunk := Chunk{
		ID:          id,
		Content:     stringField(meta, fieldContent),
		DocumentID:  stringField(meta, fieldDocumentID),
		ChunkIndex:  intField(meta, fieldChunkIndex),
		TotalChunks: intField(meta, fieldTotalChunks),
		Filename:    stringField(meta, fieldFilename),
		FileType:    stringField(meta, fieldFileType),
		FileSize:    int64(intField(meta, fieldFileSize)),
		Tags:        splitTags(stringField(meta, fieldTags)),
		Description: stringField(meta, fieldDescription),
	}
	if raw := stringField(meta, fieldUploadedAt); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			chunk.UploadedAt = t
		}
	}
	return chunk
}

func documentFromChunk(chunk Chunk) Document {
	return Document{
		ID:          chunk.DocumentID,
		Filename:    chunk.Filename,
		FileType:    chunk.FileType,
		FileSize:    chunk.FileSize,
		UploadedAt:  chunk.UploadedAt,
		ChunkCount:  chunk.TotalChunks,
		Tags:        chunk.Tags,
		Description: chunk.Description,
	}
}

// groupDocuments rebuilds document records from their chunks. Metadata comes
// from the first chunk seen for each document; the chunk count is the actual
// number of chunks present.
func groupDocuments(chunks []Chunk) []Document {
	byID := make(map[string]*Document)
	var order []string

	for _, chunk := range chunks {
		doc, ok := byID[chunk.DocumentID]
		if !ok {
			d := documentFromChunk(chunk)
			d.ChunkCount = 0
			byID[chunk.DocumentID] = &d
			order = append(order, chunk.DocumentID)
			doc = &d
		}
		doc.ChunkCount++
	}

	docs := make([]Document, 0, len(order))
	for _, id := range order {
		docs = append(docs, *byID[id])
	}

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.After(docs[j].UploadedAt)
		}
		return docs[i].Filename < docs[j].Filename
	})
	return docs
}

// HasAnyTag reports whether at least one wanted tag is present. An empty
// want list matches everything.
func HasAnyTag(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]bool, len(have))
	for _, tag := range have {
		set[tag] = true
	}
	for _, tag := range want {
		if set[tag] {
			return true
		}
	}
	return false
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func stringField(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func intField(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// convertPayloadToMap converts Qdrant payload to map[string]any.
func convertPayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		if v == nil {
			continue
		}
		result[k] = convertValue(v)
	}
	return result
}

// convertValue converts a Qdrant Value to a Go value.
func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_ListValue:
		list := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			list[i] = convertValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		return convertPayloadToMap(val.StructValue.Fields)
	default:
		return nil
	}
}
