package llm

import (
	"context"
	"fmt"
	"os"
)

// NewProvider creates a new LLM provider based on the given provider type and model.
// Supported provider types: "google", "openai", "anthropic", "openrouter",
// "minimax", "ollama".
func NewProvider(providerType string, model string) (Provider, error) {
	switch providerType {
	case "google":
		apiKey := firstEnv("GOOGLE_API_KEY", "GEMINI_API_KEY", "API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is not set")
		}
		return NewGoogleProvider(context.Background(), apiKey, model)

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model), nil

	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		return NewAnthropicProvider(apiKey, model), nil

	case "openrouter":
		apiKey := os.Getenv("OPENROUTER_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
		}
		return NewOpenAICompatibleProvider("openrouter", openRouterBaseURL, apiKey, model), nil

	case "minimax":
		apiKey := os.Getenv("MINIMAX_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("MINIMAX_API_KEY environment variable is not set")
		}
		return NewOpenAICompatibleProvider("minimax", minimaxBaseURL, apiKey, model), nil

	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// firstEnv returns the first non-empty value among the named variables.
// API_KEY is the name the hosted polish function reads.
func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
