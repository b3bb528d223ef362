// Package llm provides a provider-agnostic client for single-shot text
// generation. A call is made exactly once: there is no retry and no fallback
// endpoint, and every call is bounded by an explicit timeout.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxResponseSize limits provider response bodies read over raw HTTP.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// DefaultTimeout bounds a model call when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// Endpoint identifies where and how a model is reached.
type Endpoint struct {
	// Provider is the registered provider name ("gemini", "openai").
	Provider string
	// Model is the provider-specific model name (e.g. "gemini-2.0-flash").
	Model string
	// URL overrides the provider's default base URL. Empty uses the default.
	URL string
	// APIKey authenticates against the provider. Some providers fall back to
	// an environment variable when empty.
	APIKey string
}

// Request defines a completion request.
type Request struct {
	// Prompt is the full instruction text.
	Prompt string

	// Temperature controls randomness. nil uses the provider default.
	Temperature *float64

	// MaxTokens limits response length. 0 uses the provider default.
	MaxTokens int

	// JSON asks the provider for an application/json response when it
	// supports structured output.
	JSON bool
}

// TokenUsage represents token consumption details for a call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response contains the completion result.
type Response struct {
	// RequestID uniquely identifies this call in logs.
	RequestID string

	// Content is the generated text, untouched.
	Content string

	// Model is the model that answered.
	Model string

	// Usage contains token consumption when the provider reports it.
	Usage TokenUsage

	// FinishReason indicates why generation stopped.
	FinishReason string
}

// Call is everything a provider needs to perform one request.
type Call struct {
	Endpoint   Endpoint
	HTTPClient *http.Client
	Request    Request
}

// Client sends prompts to a single configured endpoint.
type Client struct {
	endpoint   Endpoint
	provider   Provider
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the per-call timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		if d > 0 {
			client.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}

// NewClient creates a client for the given endpoint. The endpoint's provider
// must be registered.
func NewClient(ep Endpoint, opts ...ClientOption) (*Client, error) {
	provider := GetProvider(ep.Provider)
	if provider == nil {
		return nil, fmt.Errorf("unknown provider %q (registered: %s)", ep.Provider, strings.Join(ListProviders(), ", "))
	}
	if ep.Model == "" {
		return nil, fmt.Errorf("model is required for provider %s", ep.Provider)
	}

	c := &Client{
		endpoint: ep,
		provider: provider,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// Endpoint returns the endpoint the client talks to.
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

// Complete sends one completion request.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	if req.Prompt == "" {
		return nil, NewFatalError(errors.New("prompt is required"))
	}

	requestID := uuid.New().String()
	startedAt := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("Sending model request",
		"request_id", requestID,
		"provider", c.endpoint.Provider,
		"model", c.endpoint.Model,
		"prompt_chars", len(req.Prompt))

	resp, err := c.provider.Complete(callCtx, Call{
		Endpoint:   c.endpoint,
		HTTPClient: c.httpClient,
		Request:    req,
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = NewTransientError(fmt.Errorf("model call timed out after %s: %w", c.timeout, err))
		}
		c.logger.Warn("Model request failed",
			"request_id", requestID,
			"provider", c.endpoint.Provider,
			"model", c.endpoint.Model,
			"transient", IsTransient(err),
			"duration_ms", time.Since(startedAt).Milliseconds(),
			"error", err)
		return nil, err
	}

	resp.RequestID = requestID
	if resp.Model == "" {
		resp.Model = c.endpoint.Model
	}

	c.logger.Debug("Model request completed",
		"request_id", requestID,
		"model", resp.Model,
		"finish_reason", resp.FinishReason,
		"total_tokens", resp.Usage.TotalTokens,
		"duration_ms", time.Since(startedAt).Milliseconds())

	return resp, nil
}
