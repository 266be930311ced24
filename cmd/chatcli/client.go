package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
)

// Client talks to the chat API over HTTP and remembers the current session.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	sessionID  string
}

// NewClient creates a new client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SessionID returns the session the next message continues.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Reset starts a new session on the next message.
func (c *Client) Reset() {
	c.sessionID = ""
}

// Send posts a message to the current session and adopts the returned session id.
func (c *Client) Send(ctx context.Context, message, category string) (*domain.TurnResult, error) {
	body, err := json.Marshal(domain.TurnRequest{
		Message:   message,
		SessionID: c.sessionID,
		Category:  category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result domain.TurnResult
	if err := c.do(ctx, http.MethodPost, "/v1/chat/messages", bytes.NewReader(body), &result); err != nil {
		return nil, err
	}
	c.sessionID = result.SessionID
	return &result, nil
}

// Sessions lists the caller's sessions.
func (c *Client) Sessions(ctx context.Context) ([]domain.Session, error) {
	var resp struct {
		Sessions []domain.Session `json:"sessions"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/chat/sessions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// Suggestions returns starter questions for a category.
func (c *Client) Suggestions(ctx context.Context, category string) ([]string, error) {
	path := "/v1/chat/suggestions"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Export downloads the current session, or the whole history when no session is active.
func (c *Client) Export(ctx context.Context, format string) ([]byte, error) {
	path := "/v1/chat/export"
	if c.sessionID != "" {
		path = "/v1/chat/sessions/" + url.PathEscape(c.sessionID) + "/export"
	}
	path += "?format=" + url.QueryEscape(format)

	resp, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	resp, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		var apiErr struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("server returned %d (%s): %s", resp.StatusCode, apiErr.Code, apiErr.Error)
		}
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}
	return resp, nil
}
