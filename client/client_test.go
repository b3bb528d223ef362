package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mario1918/TestCaseGenie/testcase"
	"github.com/mario1918/TestCaseGenie/tracker"
)

// fakeGenerator records requests and returns fixed cases.
type fakeGenerator struct {
	mu       sync.Mutex
	requests []GenerationRequest
	cases    []testcase.TestCase
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, req GenerationRequest) ([]testcase.TestCase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.cases, f.err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// recordingNotifier records feedback and tracks the loading indicator.
type recordingNotifier struct {
	loadingShown  int
	loadingHidden int
	successes     []string
	errors        []error
}

func (n *recordingNotifier) Loading(string) func() {
	n.loadingShown++
	return func() { n.loadingHidden++ }
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(err error)    { n.errors = append(n.errors, err) }

func sampleCases() []testcase.TestCase {
	return []testcase.TestCase{
		{ID: testcase.IntID(1), Title: "Valid login", Steps: testcase.NewText("1. Open page\n2. Log in"), ExpectedResult: testcase.NewText("Logged in"), Priority: testcase.PriorityHigh},
		{ID: testcase.StringID("TC-7"), Title: "Wrong password", Steps: testcase.NewText("1. Open page"), ExpectedResult: testcase.NewText("Error"), Priority: testcase.PriorityMedium},
		{ID: testcase.IntID(3), Title: "Locked account", Steps: testcase.NewText("1. Open page"), ExpectedResult: testcase.NewText("Locked"), Priority: testcase.PriorityLow},
	}
}

func TestOrchestrator_SubmitStory_EmptyMakesNoCall(t *testing.T) {
	gen := &fakeGenerator{}
	notifier := &recordingNotifier{}
	o := NewOrchestrator(gen, NewTable(), notifier)

	for _, story := range []string{"", "   ", "\n\t"} {
		_, err := o.SubmitStory(context.Background(), story)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "Please enter a user story.", err.Error())
	}

	assert.Zero(t, gen.calls(), "no network call for empty input")
	assert.Zero(t, notifier.loadingShown)
	require.Len(t, notifier.errors, 3)
	assert.Equal(t, MsgEmptyStory, notifier.errors[0].Error())
}

func TestOrchestrator_SubmitStory_Success(t *testing.T) {
	gen := &fakeGenerator{cases: sampleCases()}
	notifier := &recordingNotifier{}
	table := NewTable()
	o := NewOrchestrator(gen, table, notifier)

	cases, err := o.SubmitStory(context.Background(), "  As a user I want to log in  ")
	require.NoError(t, err)
	assert.Len(t, cases, 3)

	require.Len(t, gen.requests, 1)
	assert.Equal(t, "As a user I want to log in", gen.requests[0].Description)
	assert.Empty(t, gen.requests[0].Prompt)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 1, notifier.loadingShown)
	assert.Equal(t, 1, notifier.loadingHidden)
	assert.Equal(t, []string{"Generated 3 test case(s)."}, notifier.successes)
}

func TestOrchestrator_FailureKeepsTable(t *testing.T) {
	table := NewTable()
	table.Replace(sampleCases())

	gen := &fakeGenerator{err: &NetworkError{StatusCode: 500, Message: "Model did not return valid JSON"}}
	notifier := &recordingNotifier{}
	o := NewOrchestrator(gen, table, notifier)

	_, err := o.SubmitStory(context.Background(), "story")
	require.Error(t, err)

	assert.Equal(t, 3, table.Len(), "previous results remain visible")
	assert.Equal(t, 1, notifier.loadingHidden, "loading indicator always dismissed")
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, "Model did not return valid JSON", notifier.errors[0].Error())
}

func TestOrchestrator_SubmitIssue(t *testing.T) {
	issue := tracker.Issue{Key: "SE2-9", Summary: "Login", Description: "Users can log in", IssueType: "Story", Status: "To Do"}

	t.Run("sends issue context", func(t *testing.T) {
		gen := &fakeGenerator{cases: sampleCases()}
		o := NewOrchestrator(gen, NewTable(), nil)

		_, err := o.SubmitIssue(context.Background(), issue)
		require.NoError(t, err)
		require.Len(t, gen.requests, 1)
		assert.Equal(t, GenerationRequest{
			Prompt: "Users can log in", IssueKey: "SE2-9", Summary: "Login", IssueType: "Story", Status: "To Do",
		}, gen.requests[0])
	})

	t.Run("empty description is sent by default", func(t *testing.T) {
		gen := &fakeGenerator{cases: sampleCases()}
		o := NewOrchestrator(gen, NewTable(), nil)

		empty := issue
		empty.Description = ""
		_, err := o.SubmitIssue(context.Background(), empty)
		require.NoError(t, err)
		assert.Equal(t, 1, gen.calls())
		assert.Empty(t, gen.requests[0].Prompt)
	})

	t.Run("empty description rejected when configured", func(t *testing.T) {
		gen := &fakeGenerator{cases: sampleCases()}
		o := NewOrchestrator(gen, NewTable(), nil, WithRejectEmptyIssuePrompt(true))

		empty := issue
		empty.Description = "  "
		_, err := o.SubmitIssue(context.Background(), empty)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Zero(t, gen.calls())
	})

	t.Run("missing key", func(t *testing.T) {
		gen := &fakeGenerator{}
		o := NewOrchestrator(gen, NewTable(), nil)

		_, err := o.SubmitIssue(context.Background(), tracker.Issue{Description: "x"})
		require.Error(t, err)
		assert.Zero(t, gen.calls())
	})

	t.Run("zero cases is an error", func(t *testing.T) {
		table := NewTable()
		table.Replace(sampleCases())
		notifier := &recordingNotifier{}
		o := NewOrchestrator(&fakeGenerator{cases: []testcase.TestCase{}}, table, notifier)

		_, err := o.SubmitIssue(context.Background(), issue)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No test cases were generated")
		assert.Equal(t, 3, table.Len())
		assert.Equal(t, 1, notifier.loadingHidden)
	})
}

func TestTable_AddAssignsNextID(t *testing.T) {
	table := NewTable()
	table.Replace(sampleCases())

	row, err := table.Add(Fields{
		Title:          "Login works",
		Steps:          "1. Open page\n2. Click login",
		ExpectedResult: "User is logged in",
		Priority:       "high",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, table.Len())
	n, ok := row.Case.ID.Int()
	require.True(t, ok)
	assert.Equal(t, 4, n, "max numeric id (3) + 1")
	assert.Equal(t, testcase.PriorityHigh, row.Case.Priority)

	d := Display(row)
	assert.Equal(t, "High", d.Priority)
	assert.Equal(t, "#E2483D", d.PriorityColor)
	assert.Equal(t, "1. Open page\n2. Click login", d.Steps)
	assert.Equal(t, "UNEXECUTED", d.Status)

	rows := table.Rows()
	assert.Equal(t, row.Key, rows[len(rows)-1].Key, "added rows go last")
}

func TestTable_AddToEmptyTableStartsAtOne(t *testing.T) {
	table := NewTable()
	row, err := table.Add(Fields{Title: "a", Steps: "b", ExpectedResult: "c"})
	require.NoError(t, err)
	assert.Equal(t, "1", row.Case.ID.String())
	assert.Equal(t, testcase.PriorityMedium, row.Case.Priority)
}

func TestTable_IDsNotReusedAfterDelete(t *testing.T) {
	table := NewTable()
	first, err := table.Add(Fields{Title: "a", Steps: "b", ExpectedResult: "c"})
	require.NoError(t, err)
	second, err := table.Add(Fields{Title: "a", Steps: "b", ExpectedResult: "c"})
	require.NoError(t, err)
	assert.Equal(t, "2", second.Case.ID.String())

	require.NoError(t, table.Delete(second.Key))
	third, err := table.Add(Fields{Title: "a", Steps: "b", ExpectedResult: "c"})
	require.NoError(t, err)
	assert.Equal(t, "3", third.Case.ID.String())

	require.NoError(t, table.Delete(first.Key))
	require.NoError(t, table.Delete(third.Key))
	fourth, err := table.Add(Fields{Title: "a", Steps: "b", ExpectedResult: "c"})
	require.NoError(t, err)
	assert.Equal(t, "4", fourth.Case.ID.String())
}

func TestTable_ReplaceRestartsIDs(t *testing.T) {
	table := NewTable()
	table.Replace([]testcase.TestCase{{ID: testcase.IntID(10), Title: "old"}})
	table.Replace([]testcase.TestCase{
		{ID: testcase.IntID(1), Title: "a"},
		{ID: testcase.IntID(2), Title: "b"},
	})

	row, err := table.Add(Fields{Title: "Login works", Steps: "1. Open page", ExpectedResult: "User is logged in"})
	require.NoError(t, err)
	assert.Equal(t, "3", row.Case.ID.String())

	table.Replace(nil)
	row, err = table.Add(Fields{Title: "a", Steps: "b", ExpectedResult: "c"})
	require.NoError(t, err)
	assert.Equal(t, "1", row.Case.ID.String())
}

func TestTable_NonNumericIDsDoNotCollide(t *testing.T) {
	table := NewTable()
	table.Replace([]testcase.TestCase{
		{ID: testcase.StringID("TC-3"), Title: "a"},
		{ID: testcase.StringID("TC-4"), Title: "b"},
	})

	row, err := table.Add(Fields{Title: "a", Steps: "b", ExpectedResult: "c"})
	require.NoError(t, err)
	assert.Equal(t, "1", row.Case.ID.String())
	assert.NotEqual(t, table.Rows()[0].Key, row.Key)
}

func TestTable_Edit(t *testing.T) {
	table := NewTable()
	table.Replace(sampleCases())
	key := table.Rows()[1].Key

	err := table.Edit(key, Fields{Title: "Edited", Steps: "1. New step", ExpectedResult: "New result", Priority: "LOW"})
	require.NoError(t, err)

	row, ok := table.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Edited", row.Case.Title)
	assert.Equal(t, testcase.PriorityLow, row.Case.Priority)
	assert.Equal(t, "TC-7", row.Case.ID.String(), "edit keeps the id")

	tests := []struct {
		name   string
		fields Fields
	}{
		{name: "empty title", fields: Fields{Steps: "s", ExpectedResult: "e"}},
		{name: "empty steps", fields: Fields{Title: "t", ExpectedResult: "e"}},
		{name: "empty expected", fields: Fields{Title: "t", Steps: "s", ExpectedResult: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := table.Edit(key, tt.fields)
			assert.True(t, IsValidation(err))
		})
	}

	assert.Error(t, table.Edit(999, Fields{Title: "t", Steps: "s", ExpectedResult: "e"}))
}

func TestTable_DeleteLastRow(t *testing.T) {
	table := NewTable()
	row, err := table.Add(Fields{Title: "Only", Steps: "1. Step", ExpectedResult: "Done"})
	require.NoError(t, err)
	assert.False(t, table.Empty())

	require.NoError(t, table.Delete(row.Key))

	assert.True(t, table.Empty())
	assert.Zero(t, table.Len())
	_, err = table.ExportRows()
	assert.ErrorIs(t, err, ErrNothingToExport)

	_, err = ExportXLSX(nil, t.TempDir(), time.Now())
	assert.ErrorIs(t, err, ErrNothingToExport)

	assert.Error(t, table.Delete(row.Key), "deleting twice fails")
}

func TestTable_ExecutionStatus(t *testing.T) {
	table := NewTable()
	table.Replace(sampleCases())
	key := table.Rows()[0].Key

	require.NoError(t, table.SetExecutionStatus(key, testcase.StatusFail))
	row, _ := table.Get(key)
	assert.Equal(t, testcase.StatusFail, row.Status)

	next, err := table.CycleExecutionStatus(key)
	require.NoError(t, err)
	assert.Equal(t, testcase.StatusBlocked, next)

	next, err = table.CycleExecutionStatus(key)
	require.NoError(t, err)
	assert.Equal(t, testcase.StatusUnexecuted, next)

	assert.Error(t, table.SetExecutionStatus(12345, testcase.StatusPass))

	table.Replace(sampleCases())
	for _, r := range table.Rows() {
		assert.Equal(t, testcase.StatusUnexecuted, r.Status, "replacement resets annotations")
	}
}

func TestGateway_Generate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"testCases":[{"id":1,"title":"Login","steps":["Open","Click"],"expectedResult":"ok","priority":"High"}]}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL+"/", srv.Client())
	cases, err := g.Generate(context.Background(), GenerationRequest{Prompt: "desc", IssueKey: "SE2-1"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"prompt": "desc", "issue_key": "SE2-1"}, got)
	require.Len(t, cases, 1)
	assert.Equal(t, "Login", cases[0].Title)
	assert.True(t, cases[0].Steps.IsList())
}

func TestGateway_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantRaw    string
		wantStatus int
	}{
		{
			name:       "malformed model output",
			status:     500,
			body:       `{"error":"Model did not return valid JSON","raw":"not json"}`,
			wantMsg:    "Model did not return valid JSON",
			wantRaw:    "not json",
			wantStatus: 500,
		},
		{name: "message field", status: 502, body: `{"message":"bad gateway"}`, wantMsg: "bad gateway", wantStatus: 502},
		{name: "no body", status: 503, body: ``, wantMsg: "HTTP error! status: 503", wantStatus: 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGateway(srv.URL, srv.Client()).Generate(context.Background(), GenerationRequest{Description: "x"})
			var netErr *NetworkError
			require.True(t, errors.As(err, &netErr))
			assert.Equal(t, tt.wantStatus, netErr.StatusCode)
			assert.Equal(t, tt.wantMsg, netErr.Error())
			assert.Equal(t, tt.wantRaw, netErr.Raw)
		})
	}
}

func TestGateway_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewGateway(url, nil).Generate(context.Background(), GenerationRequest{Description: "x"})
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Zero(t, netErr.StatusCode)
	assert.Contains(t, netErr.Error(), "gateway unreachable")
}

func TestExportXLSX(t *testing.T) {
	table := NewTable()
	table.Replace(sampleCases())
	require.NoError(t, table.SetExecutionStatus(table.Rows()[0].Key, testcase.StatusPass))

	rows, err := table.ExportRows()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	path, err := ExportXLSX(rows, dir, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "TestCases_2025-03-14.xlsx"), path)

	_, err = os.Stat(path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	require.Len(t, sheetRows, 4)
	assert.Equal(t, []string{"ID", "Title", "Steps", "Expected Result", "Priority", "Execution Status"}, sheetRows[0])
	assert.Equal(t, []string{"1", "Valid login", "1. Open page\n2. Log in", "Logged in", "High", "PASS"}, sheetRows[1])
	assert.Equal(t, "TC-7", sheetRows[2][0])

	width, err := f.GetColWidth(ExportSheet, "C")
	require.NoError(t, err)
	assert.InDelta(t, 60, width, 0.01)
}

func TestExportXLSX_KeepsNumbersInSteps(t *testing.T) {
	table := NewTable()
	_, err := table.Add(Fields{
		Title:          "Checkout total",
		Steps:          "1. Open https://shop.example.com/\n2. Enter amount 2.50 and coupon v10.4",
		ExpectedResult: "Total is 2.25",
		Priority:       "Low",
	})
	require.NoError(t, err)

	rows, err := table.ExportRows()
	require.NoError(t, err)
	path, err := ExportXLSX(rows, t.TempDir(), time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	steps, err := f.GetCellValue(ExportSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "1. Open https://shop.example.com/\n2. Enter amount 2.50 and coupon v10.4", steps)
}
