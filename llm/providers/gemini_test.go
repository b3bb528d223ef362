package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mario1918/TestCaseGenie/llm"
)

func TestGeminiProvider_Name(t *testing.T) {
	assert.Equal(t, "gemini", (&GeminiProvider{}).Name())
}

func TestGeminiProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.0-flash:generateContent"), "unexpected path %s", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "[{\"title\":\"Login\",\"priority\":\"High\"}]"}]},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 40, "candidatesTokenCount": 12, "totalTokenCount": 52},
			"modelVersion": "gemini-2.0-flash"
		}`))
	}))
	defer server.Close()

	p := &GeminiProvider{}
	resp, err := p.Complete(context.Background(), llm.Call{
		Endpoint:   llm.Endpoint{Provider: "gemini", Model: "gemini-2.0-flash", URL: server.URL, APIKey: "test-key"},
		HTTPClient: server.Client(),
		Request:    llm.Request{Prompt: "User Story: log in", JSON: true},
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"Login","priority":"High"}]`, resp.Content)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, 52, resp.Usage.TotalTokens)
}

func TestGeminiProvider_MissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	p := &GeminiProvider{}
	_, err := p.Complete(context.Background(), llm.Call{
		Endpoint: llm.Endpoint{Provider: "gemini", Model: "gemini-2.0-flash"},
		Request:  llm.Request{Prompt: "x"},
	})
	require.Error(t, err)
	assert.True(t, llm.IsFatal(err))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestGeminiProvider_ClientCached(t *testing.T) {
	p := &GeminiProvider{}
	call := llm.Call{
		Endpoint:   llm.Endpoint{Model: "gemini-2.0-flash", URL: "http://127.0.0.1:1", APIKey: "k"},
		HTTPClient: http.DefaultClient,
	}

	first, err := p.client(context.Background(), call)
	require.NoError(t, err)
	second, err := p.client(context.Background(), call)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestGeminiProvider_RateLimitIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	p := &GeminiProvider{}
	_, err := p.Complete(context.Background(), llm.Call{
		Endpoint:   llm.Endpoint{Model: "gemini-2.0-flash", URL: server.URL, APIKey: "k"},
		HTTPClient: server.Client(),
		Request:    llm.Request{Prompt: "x"},
	})
	require.Error(t, err)
	assert.True(t, llm.IsTransient(err))
}
