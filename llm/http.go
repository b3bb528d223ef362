package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// PostJSON executes a single JSON POST against a provider endpoint and
// returns the response body. Transport failures are transient; non-200
// statuses are classified with ClassifyStatus.
func PostJSON(ctx context.Context, client *http.Client, url string, body []byte, setHeaders func(*http.Request)) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewFatalError(fmt.Errorf("create HTTP request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if setHeaders != nil {
		setHeaders(httpReq)
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, NewTransientError(fmt.Errorf("HTTP request failed: %w", err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, NewTransientError(fmt.Errorf("read response body: %w", err))
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, StatusError(httpResp.StatusCode, respBody)
	}
	return respBody, nil
}
