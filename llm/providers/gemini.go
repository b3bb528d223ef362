package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"google.golang.org/genai"

	"github.com/mario1918/TestCaseGenie/llm"
)

// GeminiProvider talks to the Gemini API through the Google GenAI SDK.
// SDK clients are cached per key/base URL/HTTP client.
type GeminiProvider struct {
	mu      sync.Mutex
	clients map[geminiClientKey]*genai.Client
}

type geminiClientKey struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func init() {
	llm.RegisterProvider(&GeminiProvider{})
}

// Name returns the provider identifier.
func (g *GeminiProvider) Name() string {
	return "gemini"
}

// client returns a cached SDK client for the endpoint.
func (g *GeminiProvider) client(ctx context.Context, call llm.Call) (*genai.Client, error) {
	apiKey := call.Endpoint.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	key := geminiClientKey{apiKey: apiKey, baseURL: call.Endpoint.URL, httpClient: call.HTTPClient}

	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[key]; ok {
		return c, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: call.HTTPClient,
	}
	if call.Endpoint.URL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: call.Endpoint.URL}
	}

	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	if g.clients == nil {
		g.clients = make(map[geminiClientKey]*genai.Client)
	}
	g.clients[key] = c
	return c, nil
}

// Complete performs one GenerateContent call.
func (g *GeminiProvider) Complete(ctx context.Context, call llm.Call) (*llm.Response, error) {
	client, err := g.client(ctx, call)
	if err != nil {
		return nil, llm.NewFatalError(err)
	}

	cfg := &genai.GenerateContentConfig{}
	if call.Request.Temperature != nil {
		t := float32(*call.Request.Temperature)
		cfg.Temperature = &t
	}
	if call.Request.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(call.Request.MaxTokens)
	}
	if call.Request.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	result, err := client.Models.GenerateContent(ctx, call.Endpoint.Model, genai.Text(call.Request.Prompt), cfg)
	if err != nil {
		return nil, classifyGenAIError(err)
	}

	resp := &llm.Response{
		Content: result.Text(),
		Model:   call.Endpoint.Model,
	}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if len(result.Candidates) > 0 && result.Candidates[0] != nil {
		resp.FinishReason = string(result.Candidates[0].FinishReason)
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = llm.TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return resp, nil
}

// classifyGenAIError maps SDK errors onto the transient/fatal taxonomy.
func classifyGenAIError(err error) error {
	wrapped := fmt.Errorf("GenAI generate failed: %w", err)

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return llm.ClassifyStatus(apiErr.Code, wrapped)
	}
	if errors.Is(err, context.Canceled) {
		return llm.NewFatalError(wrapped)
	}
	// Transport-level failures carry no status.
	return llm.NewTransientError(wrapped)
}
