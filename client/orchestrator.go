package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mario1918/TestCaseGenie/testcase"
	"github.com/mario1918/TestCaseGenie/tracker"
)

// Messages reported through the Notifier.
const (
	MsgEmptyStory       = "Please enter a user story."
	MsgEmptyIssue       = "The selected issue has no description to generate from."
	MsgNoCasesFromIssue = "No test cases were generated. The response was empty or in an unexpected format."
	MsgGenerating       = "Generating test cases..."
)

// Generator produces test cases. *Gateway satisfies it.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) ([]testcase.TestCase, error)
}

// Notifier shows generation feedback to the user.
type Notifier interface {
	// Loading shows a non-dismissing indicator. The returned func hides it.
	Loading(message string) (done func())
	Success(message string)
	Error(err error)
}

// NopNotifier discards all feedback.
type NopNotifier struct{}

func (NopNotifier) Loading(string) func() { return func() {} }
func (NopNotifier) Success(string)        {}
func (NopNotifier) Error(error)           {}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithRejectEmptyIssuePrompt makes SubmitIssue reject issues without a
// description. By default they are sent as an empty prompt.
func WithRejectEmptyIssuePrompt(reject bool) OrchestratorOption {
	return func(o *Orchestrator) {
		o.rejectEmptyIssue = reject
	}
}

// WithOrchestratorLogger sets the logger.
func WithOrchestratorLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// Orchestrator triggers generation and merges results into a table.
type Orchestrator struct {
	gen              Generator
	table            *Table
	notifier         Notifier
	rejectEmptyIssue bool
	logger           *slog.Logger
}

// NewOrchestrator creates an orchestrator writing into table.
func NewOrchestrator(gen Generator, table *Table, notifier Notifier, opts ...OrchestratorOption) *Orchestrator {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	o := &Orchestrator{
		gen:      gen,
		table:    table,
		notifier: notifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SubmitStory generates from free text. Blank text is a ValidationError and
// no request is made.
func (o *Orchestrator) SubmitStory(ctx context.Context, story string) ([]testcase.TestCase, error) {
	story = strings.TrimSpace(story)
	if story == "" {
		err := &ValidationError{Message: MsgEmptyStory}
		o.notifier.Error(err)
		return nil, err
	}
	return o.run(ctx, GenerationRequest{Description: story}, false)
}

// SubmitIssue generates from an issue description. An empty description is
// sent as-is unless the orchestrator rejects empty issue prompts.
func (o *Orchestrator) SubmitIssue(ctx context.Context, issue tracker.Issue) ([]testcase.TestCase, error) {
	if issue.Key == "" {
		err := &ValidationError{Message: "Invalid issue data: missing key"}
		o.notifier.Error(err)
		return nil, err
	}
	if o.rejectEmptyIssue && strings.TrimSpace(issue.Description) == "" {
		err := &ValidationError{Message: MsgEmptyIssue}
		o.notifier.Error(err)
		return nil, err
	}

	return o.run(ctx, GenerationRequest{
		Prompt:    issue.Description,
		IssueKey:  issue.Key,
		Summary:   issue.Summary,
		IssueType: issue.IssueType,
		Status:    issue.Status,
	}, true)
}

func (o *Orchestrator) run(ctx context.Context, req GenerationRequest, fromIssue bool) ([]testcase.TestCase, error) {
	done := o.notifier.Loading(MsgGenerating)
	defer done()

	cases, err := o.gen.Generate(ctx, req)
	if err == nil && fromIssue && len(cases) == 0 {
		err = errors.New(MsgNoCasesFromIssue)
	}
	if err != nil {
		o.logger.Warn("Test case generation failed", "issue_key", req.IssueKey, "error", err)
		if fromIssue {
			err = fmt.Errorf("failed to generate test cases: %w", err)
		}
		o.notifier.Error(err)
		return nil, err
	}

	o.table.Replace(cases)
	o.logger.Debug("Test cases generated", "issue_key", req.IssueKey, "count", len(cases))
	o.notifier.Success(fmt.Sprintf("Generated %d test case(s).", len(cases)))
	return cases, nil
}
