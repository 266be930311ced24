package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
)

// ResponderSettings controls a completion call.
type ResponderSettings struct {
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// ResponderOption configures a Responder.
type ResponderOption func(*ResponderSettings)

func WithTemperature(temp float64) ResponderOption {
	return func(s *ResponderSettings) { s.temperature = temp }
}

func WithMaxTokens(tokens int) ResponderOption {
	return func(s *ResponderSettings) { s.maxTokens = tokens }
}

// WithTimeout bounds each Generate call. Zero means no extra bound.
func WithTimeout(timeout time.Duration) ResponderOption {
	return func(s *ResponderSettings) { s.timeout = timeout }
}

// Responder turns a conversation window into a single assistant reply.
type Responder struct {
	client   LLMClient
	settings ResponderSettings
}

// NewResponder creates a Responder for model.
func NewResponder(client LLMClient, model string, opts ...ResponderOption) *Responder {
	settings := ResponderSettings{
		model:       model,
		temperature: 0.7,
		maxTokens:   1024,
	}
	for _, opt := range opts {
		opt(&settings)
	}
	return &Responder{client: client, settings: settings}
}

// Generate sends system preamble, history and the current user text as one
// chat completion. Every failure wraps domain.ErrUpstreamDegraded.
func (r *Responder) Generate(ctx context.Context, preamble string, history []ChatMessage, userText string) (string, error) {
	if r.settings.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.settings.timeout)
		defer cancel()
	}

	messages := make([]ChatMessage, 0, len(history)+2)
	if preamble != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: preamble})
	}
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: userText})

	temperature := r.settings.temperature
	maxTokens := r.settings.maxTokens
	resp, err := r.client.CreateChatCompletion(ctx, &ChatCompletionRequest{
		Model:       r.settings.model,
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamDegraded, err)
	}
	content, err := resp.Reply()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamDegraded, err)
	}
	return content, nil
}

// Ping checks that the upstream answers a model listing.
func (r *Responder) Ping(ctx context.Context) error {
	if r.settings.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.settings.timeout)
		defer cancel()
	}
	if _, err := r.client.ListModels(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamDegraded, err)
	}
	return nil
}
