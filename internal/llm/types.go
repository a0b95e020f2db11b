package llm

import (
	"context"
	"fmt"
)

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// MaxTokens limits the number of tokens generated. 0 means no limit.
	MaxTokens int

	// Temperature controls the randomness of the output.
	Temperature float64
}

// ChatClient produces chat completions.
type ChatClient interface {
	// ChatWithMessages sends a multi-message chat completion request.
	ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error)

	// Model returns the model identifier this client is configured for.
	Model() string
}

// Embedder computes embedding vectors for texts.
type Embedder interface {
	// EmbedTexts generates one embedding per input text, preserving order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// APIError is returned when a provider responds with a non-success status.
// It keeps the status code so callers can distinguish quota, auth, and rate
// limit failures without parsing message text.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}
