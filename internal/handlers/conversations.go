package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"docqa/internal/llm"
	"docqa/internal/storage"
)

// ConversationsHandler serves conversation history endpoints.
type ConversationsHandler struct {
	store storage.ConversationStore
}

// NewConversationsHandler creates a new ConversationsHandler.
func NewConversationsHandler(store storage.ConversationStore) *ConversationsHandler {
	return &ConversationsHandler{store: store}
}

// historyFetchLimit bounds how many messages the history endpoint returns.
const historyFetchLimit = 100

// HistoryResponse represents a conversation's messages in chronological order.
type HistoryResponse struct {
	ConversationID string        `json:"conversation_id"`
	Messages       []llm.Message `json:"messages"`
}

// History returns the messages of a conversation.
func (h *ConversationsHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "conversationID")

	exists, err := h.store.Exists(ctx, conversationID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, http.StatusNotFound, "Conversation not found")
		return
	}

	messages, err := h.store.History(ctx, conversationID, historyFetchLimit)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if messages == nil {
		messages = []llm.Message{}
	}

	writeJSON(ctx, w, http.StatusOK, HistoryResponse{
		ConversationID: conversationID,
		Messages:       messages,
	})
}

// Delete removes a conversation and its history.
func (h *ConversationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "conversationID")

	if err := h.store.Delete(ctx, conversationID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{
		"conversation_id": conversationID,
		"status":          "deleted",
	})
}
