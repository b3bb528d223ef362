// Package client holds the client side of test case generation: the gateway
// HTTP client, the generation orchestrator, in-memory table state, display
// helpers and spreadsheet export.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mario1918/TestCaseGenie/testcase"
)

// maxResponseSize limits gateway response bodies.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// GenerationRequest is the body of POST /generate. Free-text submissions use
// Description; issue-derived submissions use Prompt plus the issue context.
type GenerationRequest struct {
	Prompt      string `json:"prompt,omitempty"`
	Description string `json:"description,omitempty"`
	IssueKey    string `json:"issue_key,omitempty"`
	Summary     string `json:"summary,omitempty"`
	IssueType   string `json:"issue_type,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Gateway calls the generation gateway over HTTP.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
}

// NewGateway creates a gateway client. A nil httpClient gets a client whose
// timeout covers a slow model call.
func NewGateway(baseURL string, httpClient *http.Client) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Generate sends req to POST /generate and returns the test cases.
// Every failure is a *NetworkError.
func (g *Gateway) Generate(ctx context.Context, req GenerationRequest) ([]testcase.TestCase, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/generate", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		netErr := &NetworkError{StatusCode: resp.StatusCode}
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
			Raw     string `json:"raw"`
		}
		if json.Unmarshal(body, &payload) == nil {
			netErr.Message = payload.Error
			if netErr.Message == "" {
				netErr.Message = payload.Message
			}
			netErr.Raw = payload.Raw
		}
		return nil, netErr
	}

	var out struct {
		TestCases []testcase.TestCase `json:"testCases"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	if out.TestCases == nil {
		out.TestCases = []testcase.TestCase{}
	}
	return out.TestCases, nil
}
