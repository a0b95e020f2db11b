package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
	"docqa/internal/vectorindex"
)

// HistoryLimit is the number of prior conversation messages included in the
// prompt.
const HistoryLimit = 5

// summaryContentLimit caps how much document text is sent for summarization.
const summaryContentLimit = 10000

const answerPrompt = `You are an assistant that answers questions using only the provided context.

Context:
%s

Question: %s

Answer the question using only the information in the context above. If the context does not contain enough information to answer, say so explicitly. Do not use outside knowledge.`

const summaryPrompt = `Summarize the following document in a few short paragraphs. Focus on the main topics and key facts.

Document: %s

Content:
%s`

// Result is a generated answer with generation metadata.
type Result struct {
	Answer    string
	ModelUsed string
	LatencyMs int64
}

// Generator produces answers grounded in retrieved chunks.
type Generator struct {
	chat        llm.ChatClient
	temperature float64
	maxTokens   int
}

// NewGenerator creates a generator using the given chat client and sampling
// parameters.
func NewGenerator(chat llm.ChatClient, temperature float64, maxTokens int) *Generator {
	return &Generator{
		chat:        chat,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Generate answers the question from the retrieved chunks. history holds
// prior conversation messages, oldest first; only the most recent
// HistoryLimit of them are included.
func (g *Generator) Generate(ctx context.Context, question string, chunks []vectorindex.ScoredChunk, history []llm.Message) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	contextParts := make([]string, len(chunks))
	for i, chunk := range chunks {
		contextParts[i] = fmt.Sprintf("[%s]\n%s", chunk.Chunk.Filename, chunk.Chunk.Content)
	}

	prompt := fmt.Sprintf(answerPrompt, strings.Join(contextParts, "\n\n"), question)

	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: prompt})

	start := time.Now()
	text, err := g.chat.ChatWithMessages(ctx, messages, llm.ChatParams{
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	latency := time.Since(start)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	logger.InfoContext(ctx, "answer generated",
		"model", g.chat.Model(),
		"chunks", len(chunks),
		"latency_ms", latency.Milliseconds(),
	)

	return Result{
		Answer:    text,
		ModelUsed: g.chat.Model(),
		LatencyMs: latency.Milliseconds(),
	}, nil
}

// Summarize produces a short summary of a document's content. Content beyond
// summaryContentLimit runes is truncated before prompting.
func (g *Generator) Summarize(ctx context.Context, filename, content string) (Result, error) {
	runes := []rune(content)
	if len(runes) > summaryContentLimit {
		content = string(runes[:summaryContentLimit]) + "... (content truncated)"
	}

	prompt := fmt.Sprintf(summaryPrompt, filename, content)

	start := time.Now()
	text, err := g.chat.ChatWithMessages(ctx, []llm.Message{{Role: "user", Content: prompt}}, llm.ChatParams{
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	latency := time.Since(start)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate summary: %w", err)
	}

	return Result{
		Answer:    text,
		ModelUsed: g.chat.Model(),
		LatencyMs: latency.Milliseconds(),
	}, nil
}
