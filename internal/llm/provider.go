package llm

import "fmt"

// Provider identifies a chat/embedding backend. The set is closed and parsed
// once at startup; no string comparisons happen past construction.
type Provider string

const (
	ProviderOpenAI   Provider = "openai"
	ProviderDeepSeek Provider = "deepseek"
	ProviderOllama   Provider = "ollama"
)

// Default base URLs for hosted providers.
const (
	defaultOpenAIBaseURL   = "https://api.openai.com"
	defaultDeepSeekBaseURL = "https://api.deepseek.com"
)

// ParseProvider validates a provider name from configuration.
func ParseProvider(name string) (Provider, error) {
	switch Provider(name) {
	case ProviderOpenAI, ProviderDeepSeek, ProviderOllama:
		return Provider(name), nil
	default:
		return "", fmt.Errorf("unsupported provider: %q (supported: %s, %s, %s)",
			name, ProviderOpenAI, ProviderDeepSeek, ProviderOllama)
	}
}

// NewChatClient constructs the chat client for the given provider. baseURL
// may be empty to use the provider's default endpoint.
func NewChatClient(p Provider, baseURL, apiKey, model string) (ChatClient, error) {
	switch p {
	case ProviderOpenAI:
		if baseURL == "" {
			baseURL = defaultOpenAIBaseURL
		}
		return NewClient(baseURL, apiKey, model), nil
	case ProviderDeepSeek:
		if baseURL == "" {
			baseURL = defaultDeepSeekBaseURL
		}
		return NewClient(baseURL, apiKey, model), nil
	case ProviderOllama:
		return NewOllamaClient(baseURL, model), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %q", p)
	}
}

// NewEmbedder constructs the embedder for the given provider.
func NewEmbedder(p Provider, baseURL, apiKey, model string, expectedSize int) (Embedder, error) {
	switch p {
	case ProviderOpenAI:
		if baseURL == "" {
			baseURL = defaultOpenAIBaseURL
		}
		return NewEmbeddingsClient(baseURL, apiKey, model, expectedSize), nil
	case ProviderDeepSeek:
		if baseURL == "" {
			baseURL = defaultDeepSeekBaseURL
		}
		return NewEmbeddingsClient(baseURL, apiKey, model, expectedSize), nil
	case ProviderOllama:
		return NewOllamaEmbedder(baseURL, model, expectedSize), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %q", p)
	}
}
