// Package testutil provides test utilities for code that talks to models.
// It includes a mock provider for llm.Client and a mock completer for
// components that depend on the Complete method only.
package testutil

import (
	"context"
	"sync"

	"github.com/mario1918/TestCaseGenie/llm"
)

// MockProvider is a thread-safe llm.Provider that returns configured
// responses in sequence.
//
// Usage:
//
//	mock := &testutil.MockProvider{ProviderName: "mock",
//	    Responses: []*llm.Response{{Content: `[{"title": "Login"}]`}},
//	}
//	llm.RegisterProvider(mock)
//	client, _ := llm.NewClient(llm.Endpoint{Provider: "mock", Model: "m"})
type MockProvider struct {
	ProviderName string
	Responses    []*llm.Response // Responses to return in sequence
	Err          error           // Error to return (takes precedence over Responses)

	mu            sync.Mutex
	calls         []llm.Call
	responseIndex int
}

// Name implements llm.Provider.
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Complete implements llm.Provider.
func (m *MockProvider) Complete(ctx context.Context, call llm.Call) (*llm.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, call)

	if m.Err != nil {
		return nil, m.Err
	}
	return m.next(call.Endpoint.Model), nil
}

func (m *MockProvider) next(model string) *llm.Response {
	if m.responseIndex < len(m.Responses) {
		resp := *m.Responses[m.responseIndex]
		m.responseIndex++
		return &resp
	}
	return &llm.Response{Content: "[]", Model: model}
}

// Calls returns a copy of the calls received so far.
func (m *MockProvider) Calls() []llm.Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Call(nil), m.calls...)
}

// MockCompleter is a thread-safe stand-in for *llm.Client.
// It captures the requests passed to Complete and returns configured
// responses.
type MockCompleter struct {
	mu            sync.Mutex
	Responses     []*llm.Response // Responses to return in sequence
	Err           error           // Error to return (takes precedence over Responses)
	requests      []llm.Request
	responseIndex int
}

// Complete returns the next response from Responses, or Err if set.
func (m *MockCompleter) Complete(_ context.Context, req llm.Request) (*llm.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.Err != nil {
		return nil, m.Err
	}
	if m.responseIndex < len(m.Responses) {
		resp := m.Responses[m.responseIndex]
		m.responseIndex++
		return resp, nil
	}
	return &llm.Response{Content: "[]", Model: "test-model"}, nil
}

// Requests returns the requests received so far.
func (m *MockCompleter) Requests() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Request(nil), m.requests...)
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
