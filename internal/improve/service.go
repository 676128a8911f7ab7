// Package improve turns a text and a tone into a polished rewrite, either
// through an LLM provider or through a remote polish endpoint.
package improve

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/polishedai/polished/internal/llm"
	"github.com/polishedai/polished/internal/polish"
)

// ConnectionFailed is the message shown when the provider cannot be reached
// or rejects the request.
const ConnectionFailed = "Connection failed. Please check your API Key and try again."

// Usage accumulates token counts and estimated spend across requests.
type Usage struct {
	Requests     int
	InputTokens  int
	OutputTokens int
	CostUSD      float64
}

// Service implements polish.Improver on top of an llm.Provider.
type Service struct {
	provider   llm.Provider
	model      string
	logger     *zap.Logger
	maxRetries int
	backoff    time.Duration

	mu    sync.Mutex
	usage Usage
}

// Option configures a Service.
type Option func(*Service)

// WithRetry sets how often rate-limited requests are retried and the
// initial backoff between attempts.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(s *Service) {
		s.maxRetries = maxRetries
		s.backoff = backoff
	}
}

// NewService creates a Service. A nil logger disables logging.
func NewService(provider llm.Provider, model string, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		provider:   provider,
		model:      model,
		logger:     logger,
		maxRetries: 2,
		backoff:    2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ polish.Improver = (*Service)(nil)

// Improve rewrites text in the given tone. Blank text yields "" without
// contacting the provider. An empty model answer falls back to the input.
func (s *Service) Improve(ctx context.Context, text string, tone polish.Tone) (string, error) {
	if polish.IsBlank(text) {
		return "", nil
	}
	if !tone.Valid() {
		tone = polish.DefaultTone
	}

	req := llm.CompletionRequest{
		Model:       s.model,
		Messages:    buildMessages(text, tone),
		Temperature: temperature,
	}

	start := time.Now()
	resp, err := s.completeWithRetry(ctx, req)
	if err != nil {
		s.logger.Warn("improve failed",
			zap.String("provider", s.provider.Name()),
			zap.String("tone", tone.String()),
			zap.Error(err))
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", polish.NewRequestError(ConnectionFailed, err)
	}

	s.record(resp)
	s.logger.Debug("improve completed",
		zap.String("provider", s.provider.Name()),
		zap.String("tone", tone.String()),
		zap.Int("input_chars", len(text)),
		zap.Int("input_tokens", resp.InputTokens),
		zap.Int("output_tokens", resp.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))

	out := cleanResult(text, resp.Content)
	if out == "" {
		return text, nil
	}
	return out, nil
}

// Usage returns the accumulated usage so far.
func (s *Service) Usage() Usage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage
}

func (s *Service) record(resp *llm.CompletionResponse) {
	model := resp.Model
	if model == "" {
		model = s.model
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage.Requests++
	s.usage.InputTokens += resp.InputTokens
	s.usage.OutputTokens += resp.OutputTokens
	s.usage.CostUSD += llm.EstimateCost(model, resp.InputTokens, resp.OutputTokens)
}

// completeWithRetry calls the provider with exponential backoff on rate
// limit and overload errors.
func (s *Service) completeWithRetry(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	backoff := s.backoff
	for attempt := 0; ; attempt++ {
		resp, err := s.provider.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err) || attempt >= s.maxRetries {
			return nil, err
		}

		s.logger.Info("provider busy, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func retryable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "resource_exhausted")
}
