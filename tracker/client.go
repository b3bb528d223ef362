// Package tracker is a client for the issue tracker API the test case
// generator browses: components, boards, sprints and paginated issues.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxResponseSize limits tracker response bodies.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// Issue is one tracker issue as returned by the paginated issue endpoint.
type Issue struct {
	Key         string `json:"key"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	IssueType   string `json:"issue_type"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
	Reporter    string `json:"reporter"`
}

// Component is a project component.
type Component struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Board is an agile board.
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Sprint is a sprint on a board.
type Sprint struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	State string `json:"state,omitempty"`
}

// IssuePage is one page of issues.
type IssuePage struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total"`
}

// APIError is a non-2xx response from the tracker.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Client talks to the tracker API.
type Client struct {
	baseURL    string
	projectKey string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(client *Client) {
		if l != nil {
			client.logger = l
		}
	}
}

// NewClient creates a tracker client for baseURL scoped to projectKey.
func NewClient(baseURL, projectKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		projectKey: projectKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProjectKey returns the project the client is scoped to.
func (c *Client) ProjectKey() string {
	return c.projectKey
}

// Components lists the project's components.
func (c *Client) Components(ctx context.Context) ([]Component, error) {
	var out []Component
	if err := c.get(ctx, "/components", url.Values{"project_key": {c.projectKey}}, &out); err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	return out, nil
}

// Boards lists the project's boards.
func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	var out []Board
	if err := c.get(ctx, "/boards", url.Values{"project_key": {c.projectKey}}, &out); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return out, nil
}

// Sprints lists the sprints of a board in tracker order.
func (c *Client) Sprints(ctx context.Context, boardID int) ([]Sprint, error) {
	var out struct {
		Sprints []Sprint `json:"sprints"`
	}
	if err := c.get(ctx, "/sprints/ordered", url.Values{"board_id": {strconv.Itoa(boardID)}}, &out); err != nil {
		return nil, fmt.Errorf("list sprints: %w", err)
	}
	return out.Sprints, nil
}

// Issues fetches one page of issues matching q.
func (c *Client) Issues(ctx context.Context, q Query) (*IssuePage, error) {
	var page IssuePage
	if err := c.get(ctx, "/test-cases/paginated", q.Values(c.projectKey), &page); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	if page.Issues == nil {
		page.Issues = []Issue{}
	}
	return &page, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("Tracker request",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.Message
			if apiErr.Message == "" {
				apiErr.Message = payload.Detail
			}
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
