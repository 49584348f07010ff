// Package chat implements the AI chat side of the client: the transcript
// orchestrator, the OpenAI-compatible transport, and the streamed-response
// decoder that turns a buffered event stream into one assistant message.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tianya/internal/logger"
	"tianya/pkg/meettypes"
)

// Transport sends a transcript to the remote chat endpoint and returns the
// raw buffered response payload for decoding.
type Transport interface {
	Send(ctx context.Context, messages []meettypes.ChatMessage) (string, error)
}

// Client is an OpenAI-compatible chat completions client. The endpoint only
// serves streamed responses, so every request asks for a stream and the whole
// body is buffered before being handed to the decoder.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// ClientConfig holds configuration for the chat client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// completionRequest is the chat completions request payload. The model in use
// only supports streamed text responses.
type completionRequest struct {
	Model         string                  `json:"model"`
	Messages      []meettypes.ChatMessage `json:"messages"`
	Stream        bool                    `json:"stream"`
	StreamOptions *streamOptions          `json:"stream_options,omitempty"`
	Modalities    []string                `json:"modalities,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// NewClient creates a chat client for the configured compatible endpoint.
func NewClient(config ClientConfig) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
		apiKey:   config.APIKey,
		model:    config.Model,
		endpoint: "/chat/completions",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// IsConfigured returns true if the client has a valid API key and base URL.
func (c *Client) IsConfigured() bool {
	return c.apiKey != "" && c.baseURL != ""
}

// Send posts the transcript to the chat completions endpoint and returns the
// buffered response body as a raw string. Callers run it through
// DecodeStreamPayload to obtain the assistant's reply.
func (c *Client) Send(ctx context.Context, messages []meettypes.ChatMessage) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("chat client not configured: missing API key or base URL")
	}

	request := completionRequest{
		Model:         c.model,
		Messages:      messages,
		Stream:        true,
		StreamOptions: &streamOptions{IncludeUsage: true},
		Modalities:    []string{"text"},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + c.endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	logger.Debug("Chat request", "model", c.model, "messages", len(messages))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	logger.Debug("Chat response received", "bytes", len(body))
	return string(body), nil
}
