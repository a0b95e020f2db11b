package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"docqa/internal/llm"
	"docqa/internal/service"
)

// ConversationStore defines the interface for conversation persistence.
type ConversationStore interface {
	// Create starts a new conversation and returns its id.
	Create(ctx context.Context) (string, error)
	// Exists reports whether a conversation id is known.
	Exists(ctx context.Context, conversationID string) (bool, error)
	// AppendMessage records one message in a conversation.
	AppendMessage(ctx context.Context, conversationID, role, content string) error
	// History returns the most recent limit messages of a conversation in
	// chronological order.
	History(ctx context.Context, conversationID string, limit int) ([]llm.Message, error)
	// Delete removes a conversation and its messages. Returns
	// service.ErrNotFound when the conversation does not exist.
	Delete(ctx context.Context, conversationID string) error
}

// ConversationRepo provides methods for conversation operations.
// It implements the ConversationStore interface.
type ConversationRepo struct {
	db *sql.DB
}

// NewConversationRepo creates a new ConversationRepo.
func NewConversationRepo(db *sql.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// Create starts a new conversation and returns its id.
func (r *ConversationRepo) Create(ctx context.Context) (string, error) {
	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO conversations (id) VALUES (?)", id,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create conversation: %w", err)
	}
	return id, nil
}

// Exists reports whether a conversation id is known.
func (r *ConversationRepo) Exists(ctx context.Context, conversationID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM conversations WHERE id = ?", conversationID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query conversation: %w", err)
	}
	return true, nil
}

// AppendMessage records one message in a conversation.
func (r *ConversationRepo) AppendMessage(ctx context.Context, conversationID, role, content string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (conversation_id, role, content) VALUES (?, ?, ?)",
		conversationID, role, content,
	)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// History returns the most recent limit messages in chronological order.
func (r *ConversationRepo) History(ctx context.Context, conversationID string, limit int) ([]llm.Message, error) {
	// Newest-first query with a limit, then reversed into chronological order.
	rows, err := r.db.QueryContext(ctx,
		`SELECT role, content FROM messages
		 WHERE conversation_id = ?
		 ORDER BY id DESC LIMIT ?`,
		conversationID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var newestFirst []llm.Message
	for rows.Next() {
		var msg llm.Message
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		newestFirst = append(newestFirst, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	messages := make([]llm.Message, len(newestFirst))
	for i, msg := range newestFirst {
		messages[len(newestFirst)-1-i] = msg
	}
	return messages, nil
}

// Delete removes a conversation and its messages.
func (r *ConversationRepo) Delete(ctx context.Context, conversationID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM conversations WHERE id = ?", conversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("conversation %s: %w", conversationID, service.ErrNotFound)
	}
	return nil
}
