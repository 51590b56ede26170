package completion

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/graceway/shepherd/internal/config"
	infra "github.com/graceway/shepherd/internal/infrastructure/openai"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const maxRetryDelay = 8 * time.Second

// Service issues chat completion requests against the OpenAI API. Holds only
// immutable configuration and is safe for concurrent reuse.
type Service struct {
	mu              sync.RWMutex
	client          *openai.Client
	model           string
	baseTemperature float64
	jitter          float64
	maxRetries      int
	retryBaseDelay  time.Duration
}

func NewService(openAIService *infra.Service) (*Service, error) {
	if openAIService == nil {
		return nil, fmt.Errorf("OpenAI service is required")
	}

	return &Service{
		client:          openAIService.GetClient(),
		model:           config.GetChatModel(),
		baseTemperature: config.GetBaseTemperature(),
		jitter:          config.GetTemperatureJitter(),
		maxRetries:      config.GetCompletionMaxRetries(),
		retryBaseDelay:  time.Second,
	}, nil
}

// Model returns the configured chat model identifier.
func (s *Service) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// effectiveTemperature jitters the base temperature inside a bounded band so
// repeated prompts do not produce identical answers. Non-deterministic by
// design.
func (s *Service) effectiveTemperature() float32 {
	t := s.baseTemperature + (rand.Float64()*2-1)*s.jitter
	if t < 0 {
		t = 0
	}
	if t > 2 {
		t = 2
	}
	return float32(t)
}

func toOpenAIMessages(messages []ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}
	return out
}

// StreamCompletion opens an incremental completion stream. The initial
// connection is retried with exponential backoff on network and 5xx failures;
// once tokens are flowing a failure is terminal and never resumed.
func (s *Service) StreamCompletion(ctx context.Context, messages []ChatMessage) (TokenStream, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("empty messages array")
	}

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: s.effectiveTemperature(),
		Stream:      true,
		StreamOptions: &openai.StreamOptions{
			IncludeUsage: true,
		},
	}

	var lastErr error
	delay := s.retryBaseDelay

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			log.Warn().
				Err(lastErr).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("Retrying completion stream connection")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}

			delay *= 2
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
		}

		stream, err := s.client.CreateChatCompletionStream(ctx, req)
		if err == nil {
			return &openaiTokenStream{stream: stream}, nil
		}

		lastErr = err
		if !isRetryable(err) {
			break
		}
	}

	return nil, upstreamError(lastErr)
}

// Complete issues a unary chat completion, used by the non-streaming chat
// endpoint.
func (s *Service) Complete(ctx context.Context, messages []ChatMessage) (*ChatResponse, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("empty messages array")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: s.effectiveTemperature(),
	})
	if err != nil {
		return nil, upstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	return &ChatResponse{
		ID:      fmt.Sprintf("shepherd-%s", uuid.New().String()[:8]),
		Created: time.Now().Unix(),
		Reply:   resp.Choices[0].Message.Content,
		Usage: TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// isRetryable reports whether the initial connection attempt may be retried:
// transport-level failures and upstream 5xx responses only.
func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 500
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500 || reqErr.HTTPStatusCode == 0
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func upstreamError(err error) *UpstreamError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}

	msg := "completion request failed"
	if err != nil {
		msg = err.Error()
	}
	return &UpstreamError{StatusCode: 502, Message: msg}
}
