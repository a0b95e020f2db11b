package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Provider
		wantErr bool
	}{
		{name: "openai", input: "openai", want: ProviderOpenAI},
		{name: "deepseek", input: "deepseek", want: ProviderDeepSeek},
		{name: "ollama", input: "ollama", want: ProviderOllama},
		{name: "unknown", input: "anthropic", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "case sensitive", input: "OpenAI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProvider(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseProvider(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseProvider(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewChatClientDefaults(t *testing.T) {
	openai, err := NewChatClient(ProviderOpenAI, "", "key", "model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c, ok := openai.(*Client); !ok || c.BaseURL != defaultOpenAIBaseURL {
		t.Errorf("openai client base URL = %v", openai)
	}

	deepseek, err := NewChatClient(ProviderDeepSeek, "", "key", "model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c, ok := deepseek.(*Client); !ok || c.BaseURL != defaultDeepSeekBaseURL {
		t.Errorf("deepseek client base URL = %v", deepseek)
	}

	ollama, err := NewChatClient(ProviderOllama, "", "", "model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c, ok := ollama.(*OllamaClient); !ok || c.BaseURL != defaultOllamaBaseURL {
		t.Errorf("ollama client base URL = %v", ollama)
	}
}

func TestNewChatClientExplicitBaseURL(t *testing.T) {
	client, err := NewChatClient(ProviderOpenAI, "http://localhost:8080", "key", "model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := client.(*Client); c.BaseURL != "http://localhost:8080" {
		t.Errorf("base URL = %q", c.BaseURL)
	}
}

func TestOllamaChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Stream {
			t.Error("stream must be disabled")
		}
		if req.Options["num_predict"] != float64(500) {
			t.Errorf("num_predict = %v", req.Options["num_predict"])
		}

		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: Message{Role: "assistant", Content: "local answer"},
		})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3")
	got, err := client.ChatWithMessages(context.Background(), []Message{{Role: "user", Content: "hi"}}, ChatParams{MaxTokens: 500, Temperature: 0.7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "local answer" {
		t.Errorf("answer = %q", got)
	}
}

func TestOllamaEmbedderSequentialOrder(t *testing.T) {
	var prompts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req ollamaEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		prompts = append(prompts, req.Prompt)

		_ = json.NewEncoder(w).Encode(ollamaEmbedResponse{
			Embedding: []float64{float64(len(req.Prompt)), 0},
		})
	}))
	defer server.Close()

	embedder := NewOllamaEmbedder(server.URL, "nomic-embed-text", 2)
	vecs, err := embedder.EmbedTexts(context.Background(), []string{"aa", "bbbb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prompts) != 2 || prompts[0] != "aa" || prompts[1] != "bbbb" {
		t.Errorf("prompts = %v", prompts)
	}
	if vecs[0][0] != 2 || vecs[1][0] != 4 {
		t.Errorf("vectors out of order: %v", vecs)
	}
}
