package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mario1918/TestCaseGenie/llm"
	"github.com/mario1918/TestCaseGenie/llm/testutil"
	"github.com/mario1918/TestCaseGenie/testcase"
)

const loginCases = `[
  {"id": 1, "title": "Valid login", "steps": "1. Navigate to https://a-qa-my.siliconexpert.com/\n2. Enter valid credentials", "expectedResult": "User is logged in", "priority": "high"},
  {"id": 2, "Title": "Wrong password", "Steps": "1. Navigate to https://a-qa-my.siliconexpert.com/\n2. Enter a wrong password", "ExpectedResult": "Error shown", "Priority": "Medium"}
]`

func TestService_Generate(t *testing.T) {
	mock := &testutil.MockCompleter{
		Responses: []*llm.Response{{Content: "```json\n" + loginCases + "\n```", RequestID: "req-1", Model: "m"}},
	}
	temp := 0.3
	svc := NewService(mock, WithNavigationURL("https://staging.example.com/"), WithTemperature(&temp), WithMaxTokens(1024))

	result, err := svc.Generate(context.Background(), Request{Prompt: "As a user I want to log in", IssueKey: "SE2-1"})
	require.NoError(t, err)

	require.Len(t, result.TestCases, 2)
	assert.Equal(t, "req-1", result.RequestID)
	assert.Equal(t, "m", result.Model)
	for _, tc := range result.TestCases {
		assert.True(t, tc.Priority.Valid(), "priority %q should be canonical", tc.Priority)
	}
	assert.Equal(t, testcase.PriorityHigh, result.TestCases[0].Priority)
	assert.Equal(t, "Wrong password", result.TestCases[1].Title)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].JSON)
	assert.Equal(t, 1024, reqs[0].MaxTokens)
	require.NotNil(t, reqs[0].Temperature)
	assert.InDelta(t, 0.3, *reqs[0].Temperature, 1e-9)
	assert.Contains(t, reqs[0].Prompt, "As a user I want to log in")
	assert.Contains(t, reqs[0].Prompt, "Navigate to https://staging.example.com/")
	assert.Contains(t, reqs[0].Prompt, "Issue: SE2-1")
}

func TestService_Generate_EmptyPrompt(t *testing.T) {
	mock := &testutil.MockCompleter{}
	svc := NewService(mock)

	for _, p := range []string{"", "   ", "\n\t"} {
		_, err := svc.Generate(context.Background(), Request{Prompt: p})
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	}
	assert.Zero(t, mock.CallCount(), "blank prompts must not reach the model")
}

func TestService_Generate_ModelFailure(t *testing.T) {
	cause := llm.NewFatalError(errors.New("API key not valid"))
	svc := NewService(&testutil.MockCompleter{Err: cause})

	_, err := svc.Generate(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)

	genErr, ok := AsGeneration(err)
	require.True(t, ok)
	assert.ErrorIs(t, genErr, cause)
	assert.Contains(t, err.Error(), "API key not valid")

	_, malformed := AsMalformed(err)
	assert.False(t, malformed)
}

func TestService_Generate_Malformed(t *testing.T) {
	svc := NewService(&testutil.MockCompleter{Responses: []*llm.Response{{Content: "not json"}}})

	_, err := svc.Generate(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)

	m, ok := AsMalformed(err)
	require.True(t, ok)
	assert.Equal(t, "not json", m.Raw)

	var parseErr *testcase.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr bool
	}{
		{name: "plain array", raw: `[{"title":"a"}]`, wantLen: 1},
		{name: "fenced array", raw: "```json\n[{\"title\":\"a\"}]\n```", wantLen: 1},
		{name: "uppercase fence", raw: "```JSON [{\"title\":\"a\"},{\"title\":\"b\"}] ```", wantLen: 2},
		{name: "empty array", raw: "[]", wantLen: 0},
		{name: "fenced empty array", raw: "```json\n[]\n```", wantLen: 0},
		{name: "trailing comma repaired", raw: "[{\"title\":\"a\",},]", wantLen: 1},
		{name: "line comment repaired", raw: "[\n{\"title\":\"a\"} // only one\n]", wantLen: 1},
		{name: "not json", raw: "not json", wantErr: true},
		{name: "object not array", raw: `{"testCases": []}`, wantErr: true},
		{name: "array of strings", raw: `["a","b"]`, wantErr: true},
		{name: "empty text", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases, err := Normalize(tt.raw)
			if tt.wantErr {
				m, ok := AsMalformed(err)
				require.True(t, ok, "expected MalformedResponseError, got %v", err)
				assert.Equal(t, tt.raw, m.Raw)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cases)
			assert.Len(t, cases, tt.wantLen)
		})
	}
}

func TestNormalize_FencedMatchesUnfenced(t *testing.T) {
	plain, err := Normalize(loginCases)
	require.NoError(t, err)
	fenced, err := Normalize("```json\n" + loginCases + "\n```")
	require.NoError(t, err)

	if diff := cmp.Diff(plain, fenced, cmp.AllowUnexported(testcase.ID{}, testcase.Text{})); diff != "" {
		t.Errorf("fenced output differs (-plain +fenced):\n%s", diff)
	}
}
