package client

import (
	"fmt"
	"strings"

	"github.com/mario1918/TestCaseGenie/testcase"
)

// Row is one test case in the table plus its client-side annotations.
type Row struct {
	// Key addresses the row for the lifetime of the table. Model ids are
	// not unique, so rows are never addressed by ID.
	Key    int
	Case   testcase.TestCase
	Status testcase.ExecutionStatus
}

// Fields are the user-editable parts of a test case.
type Fields struct {
	Title          string
	Steps          string
	ExpectedResult string
	Priority       string
}

// Validate checks that title, steps and expected result are non-empty.
func (f Fields) Validate() error {
	switch {
	case strings.TrimSpace(f.Title) == "":
		return &ValidationError{Message: "Title is required."}
	case strings.TrimSpace(f.Steps) == "":
		return &ValidationError{Message: "Steps are required."}
	case strings.TrimSpace(f.ExpectedResult) == "":
		return &ValidationError{Message: "Expected result is required."}
	}
	return nil
}

func (f Fields) apply(tc *testcase.TestCase) {
	tc.Title = strings.TrimSpace(f.Title)
	tc.Steps = testcase.NewText(strings.TrimSpace(f.Steps))
	tc.ExpectedResult = testcase.NewText(strings.TrimSpace(f.ExpectedResult))
	tc.Priority = testcase.ParsePriority(f.Priority)
	if tc.Priority == "" {
		tc.Priority = testcase.PriorityMedium
	}
}

// Table is the in-memory list of test cases shown to the user.
// It is owned by a single goroutine and is not safe for concurrent use.
type Table struct {
	rows    []Row
	nextKey int
	// maxID is the highest numeric id seen since the last Replace. Deletes
	// do not lower it, so manual ids are never reused within one result set.
	maxID int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{nextKey: 1}
}

// Replace swaps the whole table for cases, as after a successful generation.
func (t *Table) Replace(cases []testcase.TestCase) {
	t.rows = make([]Row, 0, len(cases))
	t.maxID = 0
	for _, tc := range cases {
		t.append(tc)
	}
}

func (t *Table) append(tc testcase.TestCase) Row {
	if n, ok := tc.ID.Int(); ok && n > t.maxID {
		t.maxID = n
	}
	row := Row{Key: t.nextKey, Case: tc, Status: testcase.StatusUnexecuted}
	t.nextKey++
	t.rows = append(t.rows, row)
	return row
}

// Add appends a manually entered test case with the next integer id.
func (t *Table) Add(f Fields) (Row, error) {
	if err := f.Validate(); err != nil {
		return Row{}, err
	}

	var tc testcase.TestCase
	f.apply(&tc)
	tc.ID = testcase.IntID(t.maxID + 1)
	return t.append(tc), nil
}

// Edit replaces the editable fields of the row with the given key.
func (t *Table) Edit(key int, f Fields) error {
	if err := f.Validate(); err != nil {
		return err
	}
	i, err := t.index(key)
	if err != nil {
		return err
	}
	f.apply(&t.rows[i].Case)
	return nil
}

// Delete removes the row with the given key.
func (t *Table) Delete(key int) error {
	i, err := t.index(key)
	if err != nil {
		return err
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

// SetExecutionStatus annotates a row. The status never leaves the client.
func (t *Table) SetExecutionStatus(key int, status testcase.ExecutionStatus) error {
	i, err := t.index(key)
	if err != nil {
		return err
	}
	t.rows[i].Status = status
	return nil
}

// CycleExecutionStatus advances a row to the next status and returns it.
func (t *Table) CycleExecutionStatus(key int) (testcase.ExecutionStatus, error) {
	i, err := t.index(key)
	if err != nil {
		return "", err
	}
	t.rows[i].Status = t.rows[i].Status.Next()
	return t.rows[i].Status, nil
}

// Get returns the row with the given key.
func (t *Table) Get(key int) (Row, bool) {
	i, err := t.index(key)
	if err != nil {
		return Row{}, false
	}
	return t.rows[i], true
}

// Rows returns a copy of the rows in insertion order.
func (t *Table) Rows() []Row {
	return append([]Row(nil), t.rows...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the table has no rows. Export is disabled when true.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// ExportRows returns the display form of every row, in order.
func (t *Table) ExportRows() ([]DisplayRow, error) {
	if t.Empty() {
		return nil, ErrNothingToExport
	}
	out := make([]DisplayRow, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, Display(r))
	}
	return out, nil
}

func (t *Table) index(key int) (int, error) {
	for i, r := range t.rows {
		if r.Key == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no test case row %d", key)
}
