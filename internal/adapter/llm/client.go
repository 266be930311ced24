package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultMaxResponseBytes caps how much of an upstream body is read.
const DefaultMaxResponseBytes int64 = 2 << 20

var (
	// ErrMalformedResponse is returned for a 2xx completion that carries no usable reply.
	ErrMalformedResponse = errors.New("malformed completion response")
	// ErrResponseTooLarge is returned when an upstream body exceeds the read limit.
	ErrResponseTooLarge = errors.New("upstream response too large")
)

// Client talks to an OpenAI-compatible endpoint such as Groq.
type Client struct {
	baseURL    string
	apiKey     string
	maxBody    int64
	httpClient *http.Client
}

// NewClient creates a new chat completion client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		maxBody: DefaultMaxResponseBytes,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ChatCompletionRequest is the subset of the completion request the chat backend sends.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

// ChatMessage is one role-tagged entry of the prompt.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse keeps only the choices; ids and usage are ignored.
type ChatCompletionResponse struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Message *ChatMessage `json:"message,omitempty"`
}

// Reply returns the first choice's text, or ErrMalformedResponse when there
// is none or it is blank.
func (r *ChatCompletionResponse) Reply() (string, error) {
	if r == nil || len(r.Choices) == 0 || r.Choices[0].Message == nil {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	content := r.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}
	return content, nil
}

type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Model is an entry of the upstream model listing.
type Model struct {
	ID string `json:"id"`
}

type modelList struct {
	Data []Model `json:"data"`
}

// CreateChatCompletion posts a non-streaming completion and rejects replies
// without usable content.
func (c *Client) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result ChatCompletionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/chat/completions", body, &result); err != nil {
		return nil, err
	}
	if _, err := result.Reply(); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListModels retrieves the ids the upstream serves.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var result modelList
	if err := c.do(ctx, http.MethodGet, "/v1/models", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// One extra byte tells a body at the limit apart from one past it.
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(respBody)) > c.maxBody {
		return fmt.Errorf("%w: more than %d bytes from %s", ErrResponseTooLarge, c.maxBody, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		if json.Unmarshal(respBody, &envelope) == nil && envelope.Error != nil {
			return fmt.Errorf("LLM API error [%d]: %s (type: %s)", resp.StatusCode, envelope.Error.Message, envelope.Error.Type)
		}
		return fmt.Errorf("LLM API error [%d]: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
