// Package generator turns a requirement into test cases: it builds the
// prompt, makes one model call and normalises the answer.
package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mario1918/TestCaseGenie/llm"
	"github.com/mario1918/TestCaseGenie/prompts"
	"github.com/mario1918/TestCaseGenie/testcase"
)

// ErrEmptyPrompt is returned when the requirement text is blank.
var ErrEmptyPrompt = errors.New("prompt is required")

// Completer is the model call used by the Service. *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Request is one generation request.
type Request struct {
	Prompt    string
	IssueKey  string
	Summary   string
	IssueType string
	Status    string
}

// Result is the outcome of a successful generation.
type Result struct {
	TestCases []testcase.TestCase
	RequestID string
	Model     string
}

// Service runs the generation pipeline.
type Service struct {
	completer     Completer
	navigationURL string
	temperature   *float64
	maxTokens     int
	logger        *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithNavigationURL sets the page generated steps start from.
func WithNavigationURL(u string) Option {
	return func(s *Service) {
		s.navigationURL = u
	}
}

// WithTemperature sets the sampling temperature. nil keeps the provider default.
func WithTemperature(t *float64) Option {
	return func(s *Service) {
		s.temperature = t
	}
}

// WithMaxTokens limits the response length.
func WithMaxTokens(n int) Option {
	return func(s *Service) {
		s.maxTokens = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service that calls completer.
func NewService(completer Completer, opts ...Option) *Service {
	s := &Service{
		completer:     completer,
		navigationURL: prompts.DefaultNavigationURL,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate produces test cases for req. Either the whole normalised array is
// returned or an error; there is no partial result.
//
// Errors:
//   - ErrEmptyPrompt when the prompt is blank
//   - *GenerationError when the model call fails
//   - *MalformedResponseError when the answer is not a JSON array
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	prompt := prompts.TestCasePrompt(prompts.TestCaseParams{
		Story:         req.Prompt,
		NavigationURL: s.navigationURL,
		IssueKey:      req.IssueKey,
		Summary:       req.Summary,
		IssueType:     req.IssueType,
		Status:        req.Status,
	})

	resp, err := s.completer.Complete(ctx, llm.Request{
		Prompt:      prompt,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		JSON:        true,
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	cases, err := Normalize(resp.Content)
	if err != nil {
		s.logger.Warn("Model returned malformed test cases",
			"request_id", resp.RequestID,
			"model", resp.Model,
			"issue_key", req.IssueKey,
			"raw_chars", len(resp.Content),
			"error", err)
		return nil, err
	}

	s.logger.Debug("Generated test cases",
		"request_id", resp.RequestID,
		"model", resp.Model,
		"issue_key", req.IssueKey,
		"count", len(cases))

	return &Result{
		TestCases: cases,
		RequestID: resp.RequestID,
		Model:     resp.Model,
	}, nil
}

// Normalize strips code fences from model text and parses it into test cases.
// Text that only fails because of line comments or trailing commas is
// repaired once. Failures are *MalformedResponseError carrying the raw text.
func Normalize(raw string) ([]testcase.TestCase, error) {
	stripped := llm.StripCodeFences(raw)

	cases, err := testcase.Normalize(stripped)
	if err == nil {
		return cases, nil
	}

	if repaired := llm.RepairJSON(stripped); repaired != stripped {
		if cases, rerr := testcase.Normalize(repaired); rerr == nil {
			return cases, nil
		}
	}
	return nil, &MalformedResponseError{Raw: raw, Err: err}
}
