package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"docqa/internal/answer"
	"docqa/internal/contextutil"
	"docqa/internal/vectorindex"
)

// DocumentsHandler serves document management endpoints.
type DocumentsHandler struct {
	index     vectorindex.Index
	generator *answer.Generator
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(index vectorindex.Index, generator *answer.Generator) *DocumentsHandler {
	return &DocumentsHandler{
		index:     index,
		generator: generator,
	}
}

// DocumentListResponse wraps a document listing.
type DocumentListResponse struct {
	Documents []vectorindex.Document `json:"documents"`
	Total     int                    `json:"total"`
}

// List returns all indexed documents.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.index.AllDocuments(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if docs == nil {
		docs = []vectorindex.Document{}
	}

	writeJSON(ctx, w, http.StatusOK, DocumentListResponse{
		Documents: docs,
		Total:     len(docs),
	})
}

// Get returns one document by id.
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, err := h.index.DocumentByID(ctx, chi.URLParam(r, "documentID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, doc)
}

// DeleteResponse reports the outcome of a document deletion.
type DeleteResponse struct {
	DocumentID    string `json:"document_id"`
	ChunksDeleted int    `json:"chunks_deleted"`
	Status        string `json:"status"`
}

// Delete removes a document and all its chunks.
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	documentID := chi.URLParam(r, "documentID")

	deleted, err := h.index.DeleteDocument(ctx, documentID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if deleted == 0 {
		writeError(ctx, w, http.StatusNotFound, "Document not found")
		return
	}

	logger.InfoContext(ctx, "document deleted", "document_id", documentID, "chunks", deleted)
	writeJSON(ctx, w, http.StatusOK, DeleteResponse{
		DocumentID:    documentID,
		ChunksDeleted: deleted,
		Status:        "deleted",
	})
}

// UpdateMetadataRequest carries optional metadata fields; at least one must
// be present.
type UpdateMetadataRequest struct {
	Tags        *[]string `json:"tags"`
	Description *string   `json:"description"`
}

// Update changes a document's tags and/or description on every chunk.
func (h *DocumentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID := chi.URLParam(r, "documentID")

	var req UpdateMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Tags == nil && req.Description == nil {
		writeError(ctx, w, http.StatusBadRequest, "At least one of tags or description is required")
		return
	}

	updated, err := h.index.UpdateDocumentMetadata(ctx, documentID, vectorindex.MetadataUpdate{
		Tags:        req.Tags,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if !updated {
		writeError(ctx, w, http.StatusNotFound, "Document not found")
		return
	}

	doc, err := h.index.DocumentByID(ctx, documentID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, doc)
}

// ContentResponse carries a document's reassembled text.
type ContentResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Content    string `json:"content"`
}

// Content returns the full extracted text of a document.
func (h *DocumentsHandler) Content(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID := chi.URLParam(r, "documentID")

	doc, err := h.index.DocumentByID(ctx, documentID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	content, err := h.index.DocumentContent(ctx, documentID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, ContentResponse{
		DocumentID: documentID,
		Filename:   doc.Filename,
		Content:    content,
	})
}

// SummaryResponse carries a generated document summary.
type SummaryResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Summary    string `json:"summary"`
	ModelUsed  string `json:"model_used"`
	LatencyMs  int64  `json:"latency_ms"`
}

// Summary generates a short LLM summary of a document's content.
func (h *DocumentsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID := chi.URLParam(r, "documentID")

	doc, err := h.index.DocumentByID(ctx, documentID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	content, err := h.index.DocumentContent(ctx, documentID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	result, err := h.generator.Summarize(ctx, doc.Filename, content)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, SummaryResponse{
		DocumentID: documentID,
		Filename:   doc.Filename,
		Summary:    result.Answer,
		ModelUsed:  result.ModelUsed,
		LatencyMs:  result.LatencyMs,
	})
}

// SearchRequest carries a document search. All fields are optional; without a
// query the search degrades to a metadata-filtered listing.
type SearchRequest struct {
	Query    string   `json:"query"`
	FileType string   `json:"file_type,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	K        int      `json:"k,omitempty"`
}

// Search finds documents relevant to a free-text query, deduplicated by
// document and optionally narrowed by file type and tags. An empty query
// lists every document and applies the filters in memory.
func (h *DocumentsHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	k := req.K
	if k == 0 {
		k = defaultK
	}
	if k < 1 || k > maxK {
		writeError(ctx, w, http.StatusBadRequest, "k must be between 1 and 10")
		return
	}

	var docs []vectorindex.Document
	var err error
	if strings.TrimSpace(req.Query) == "" {
		docs, err = h.index.AllDocuments(ctx)
		docs = filterDocuments(docs, req.FileType, req.Tags)
	} else {
		docs, err = h.index.SearchDocuments(ctx, req.Query, k, req.FileType, req.Tags)
	}
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if docs == nil {
		docs = []vectorindex.Document{}
	}

	writeJSON(ctx, w, http.StatusOK, DocumentListResponse{
		Documents: docs,
		Total:     len(docs),
	})
}

// filterDocuments keeps documents matching the file type and carrying any of
// the requested tags.
func filterDocuments(docs []vectorindex.Document, fileType string, tags []string) []vectorindex.Document {
	filtered := make([]vectorindex.Document, 0, len(docs))
	for _, doc := range docs {
		if fileType != "" && doc.FileType != fileType {
			continue
		}
		if !vectorindex.HasAnyTag(doc.Tags, tags) {
			continue
		}
		filtered = append(filtered, doc)
	}
	return filtered
}
