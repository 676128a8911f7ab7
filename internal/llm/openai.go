package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Base URLs of OpenAI-compatible services.
const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	minimaxBaseURL    = "https://api.minimax.io/v1"
)

// OpenAIProvider implements Provider using the OpenAI Chat Completions API
// or any service that speaks it.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string
	// strictTemp clamps temperature into (0, 1] for services that reject 0.
	strictTemp bool
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
		name:   "openai",
	}
}

// NewOpenAICompatibleProvider creates a provider for an OpenAI-compatible
// endpoint at baseURL.
func NewOpenAICompatibleProvider(name, baseURL, apiKey, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		name:       name,
		strictTemp: name == "minimax",
	}
}

func (p *OpenAIProvider) Name() string {
	return p.name
}

func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	temp := req.Temperature
	if p.strictTemp {
		if temp <= 0 {
			temp = 0.01
		} else if temp > 1.0 {
			temp = 1.0
		}
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(temp),
	}

	resp, err := p.client.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return nil, err
	}

	out := &CompletionResponse{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		Model:        resp.Model,
	}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
		out.FinishReason = string(resp.Choices[0].FinishReason)
	}
	return out, nil
}
