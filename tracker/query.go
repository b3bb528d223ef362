package tracker

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultIssueType is the issue type filter applied when filters are cleared.
const DefaultIssueType = "Story"

// Filters narrow the issue list.
type Filters struct {
	IssueType string
	Component string
	Sprint    string
	// JQL, when set, is sent as-is and replaces the JQL built from the
	// other filters.
	JQL string
}

// BuildJQL joins the set filters into a JQL clause, e.g.
// issuetype = "Story" AND component = "Search" AND sprint = "Sprint 12".
func (f Filters) BuildJQL() string {
	if jql := strings.TrimSpace(f.JQL); jql != "" {
		return jql
	}

	var clauses []string
	if f.IssueType != "" {
		clauses = append(clauses, fmt.Sprintf("issuetype = %s", quoteJQL(f.IssueType)))
	}
	if f.Component != "" {
		clauses = append(clauses, fmt.Sprintf("component = %s", quoteJQL(f.Component)))
	}
	if f.Sprint != "" {
		clauses = append(clauses, fmt.Sprintf("sprint = %s", quoteJQL(f.Sprint)))
	}
	return strings.Join(clauses, " AND ")
}

func quoteJQL(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Query selects one page of issues.
type Query struct {
	Filters
	StartAt    int
	MaxResults int
}

// Values encodes q as query parameters for the paginated issue endpoint.
func (q Query) Values(projectKey string) url.Values {
	v := url.Values{}
	v.Set("project_key", projectKey)
	v.Set("start_at", strconv.Itoa(q.StartAt))
	v.Set("max_results", strconv.Itoa(q.MaxResults))
	if q.IssueType != "" {
		v.Set("issue_type", q.IssueType)
	}
	if q.Component != "" {
		v.Set("component", q.Component)
	}
	if q.Sprint != "" {
		v.Set("sprint", q.Sprint)
	}
	if jql := q.BuildJQL(); jql != "" {
		v.Set("jql_filter", jql)
	}
	return v
}

// Pager tracks the offset into a paginated issue list.
type Pager struct {
	StartAt  int
	PageSize int
	Total    int
	// Shown is the number of issues on the current page.
	Shown int
}

// NewPager creates a pager at the first page.
func NewPager(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &Pager{PageSize: pageSize}
}

// Query returns the query for the current page with the given filters.
func (p *Pager) Query(f Filters) Query {
	return Query{Filters: f, StartAt: p.StartAt, MaxResults: p.PageSize}
}

// Update records the result of fetching the current page.
func (p *Pager) Update(page *IssuePage) {
	p.Total = page.Total
	p.Shown = len(page.Issues)
}

// HasPrev reports whether a previous page exists.
func (p *Pager) HasPrev() bool {
	return p.StartAt >= p.PageSize
}

// HasNext reports whether a next page exists.
func (p *Pager) HasNext() bool {
	return p.StartAt+p.PageSize < p.Total
}

// Next moves to the next page. It returns false when already on the last page.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.StartAt += p.PageSize
	return true
}

// Prev moves to the previous page. It returns false when already on the first page.
func (p *Pager) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.StartAt -= p.PageSize
	return true
}

// Reset returns to the first page, as when filters change.
func (p *Pager) Reset() {
	p.StartAt = 0
}

// RangeLabel describes the visible range, e.g. "6-10 of 23 items".
func (p *Pager) RangeLabel() string {
	if p.Shown == 0 {
		return "0 items"
	}
	start := p.StartAt + 1
	end := min(p.StartAt+p.Shown, p.Total)
	return fmt.Sprintf("%d-%d of %d items", start, end, p.Total)
}
