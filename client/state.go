package client

import (
	"github.com/mario1918/TestCaseGenie/tracker"
)

// State is everything a client session holds: the issue browser position
// and the test case table. Handlers receive it explicitly.
type State struct {
	Filters tracker.Filters
	Pager   *tracker.Pager
	Issues  []tracker.Issue
	Options *tracker.FilterOptions
	Table   *Table
}

// NewState creates a session with the default issue type filter.
func NewState(pageSize int) *State {
	return &State{
		Filters: tracker.Filters{IssueType: tracker.DefaultIssueType},
		Pager:   tracker.NewPager(pageSize),
		Options: &tracker.FilterOptions{},
		Table:   NewTable(),
	}
}

// SetIssues records a fetched page.
func (s *State) SetIssues(page *tracker.IssuePage) {
	s.Issues = page.Issues
	s.Pager.Update(page)
}

// ApplyFilters replaces the filters and returns to the first page.
func (s *State) ApplyFilters(f tracker.Filters) {
	s.Filters = f
	s.Pager.Reset()
}

// ClearFilters restores the default filters and returns to the first page.
func (s *State) ClearFilters() {
	s.ApplyFilters(tracker.Filters{IssueType: tracker.DefaultIssueType})
}

// Query returns the issue query for the current page and filters.
func (s *State) Query() tracker.Query {
	return s.Pager.Query(s.Filters)
}

// Issue returns the issue at index i of the current page.
func (s *State) Issue(i int) (tracker.Issue, bool) {
	if i < 0 || i >= len(s.Issues) {
		return tracker.Issue{}, false
	}
	return s.Issues[i], true
}
