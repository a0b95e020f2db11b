package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"docqa/internal/answer"
	"docqa/internal/contextutil"
	"docqa/internal/storage"
	"docqa/internal/validate"
	"docqa/internal/vectorindex"
)

const (
	defaultK = 3
	maxK     = 10

	sourcePreviewLength = 200
)

// QueryHandler answers questions against the indexed documents.
type QueryHandler struct {
	index         vectorindex.Index
	generator     *answer.Generator
	conversations storage.ConversationStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(index vectorindex.Index, generator *answer.Generator, conversations storage.ConversationStore) *QueryHandler {
	return &QueryHandler{
		index:         index,
		generator:     generator,
		conversations: conversations,
	}
}

// QueryRequest represents the question payload.
type QueryRequest struct {
	Question       string `json:"question"`
	MaxResults     int    `json:"max_results,omitempty"`
	DocumentID     string `json:"document_id,omitempty"`
	FileType       string `json:"file_type,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// SourceResponse is one retrieved chunk backing an answer.
type SourceResponse struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Preview    string  `json:"preview"`
	Score      float32 `json:"score"`
}

// QueryResponse represents the generated answer.
type QueryResponse struct {
	Answer         string           `json:"answer"`
	Sources        []SourceResponse `json:"sources"`
	ModelUsed      string           `json:"model_used"`
	LatencyMs      int64            `json:"latency_ms"`
	ConversationID string           `json:"conversation_id"`
}

// Query runs retrieval and answer generation for a question.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := validate.Query(req.Question)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	k := req.MaxResults
	if k == 0 {
		k = defaultK
	}
	if k < 1 || k > maxK {
		writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("max_results must be between 1 and %d", maxK))
		return
	}

	// Resolve the conversation before doing any expensive work.
	conversationID := req.ConversationID
	if conversationID != "" {
		exists, err := h.conversations.Exists(ctx, conversationID)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}
		if !exists {
			writeError(ctx, w, http.StatusNotFound, "Conversation not found")
			return
		}
	} else {
		conversationID, err = h.conversations.Create(ctx)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}
	}

	chunks, err := h.index.Search(ctx, question, k, req.DocumentID, req.FileType)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if len(chunks) == 0 {
		writeError(ctx, w, http.StatusNotFound, "No relevant documents found for this question")
		return
	}

	history, err := h.conversations.History(ctx, conversationID, answer.HistoryLimit)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	result, err := h.generator.Generate(ctx, question, chunks, history)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	if err := h.conversations.AppendMessage(ctx, conversationID, "user", question); err != nil {
		logger.WarnContext(ctx, "failed to record question", "conversation_id", conversationID, "error", err)
	}
	if err := h.conversations.AppendMessage(ctx, conversationID, "assistant", result.Answer); err != nil {
		logger.WarnContext(ctx, "failed to record answer", "conversation_id", conversationID, "error", err)
	}

	sources := make([]SourceResponse, len(chunks))
	for i, chunk := range chunks {
		sources[i] = SourceResponse{
			DocumentID: chunk.Chunk.DocumentID,
			Filename:   chunk.Chunk.Filename,
			ChunkIndex: chunk.Chunk.ChunkIndex,
			Preview:    preview(chunk.Chunk.Content),
			Score:      clampScore(chunk.Score),
		}
	}

	writeJSON(ctx, w, http.StatusOK, QueryResponse{
		Answer:         result.Answer,
		Sources:        sources,
		ModelUsed:      result.ModelUsed,
		LatencyMs:      result.LatencyMs,
		ConversationID: conversationID,
	})
}

// preview returns the first sourcePreviewLength runes of content.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= sourcePreviewLength {
		return content
	}
	return string(runes[:sourcePreviewLength]) + "..."
}

// clampScore keeps cosine scores within [0, 1] for presentation.
func clampScore(score float32) float32 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
