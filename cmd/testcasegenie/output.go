package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mario1918/TestCaseGenie/client"
	"github.com/mario1918/TestCaseGenie/testcase"
	"github.com/mario1918/TestCaseGenie/tracker"
)

var (
	successColor = color.New(color.FgHiGreen).SprintFunc()
	errorColor   = color.New(color.FgHiRed).SprintFunc()
	infoColor    = color.New(color.FgHiCyan).SprintFunc()
	mutedColor   = color.New(color.FgHiBlack).SprintFunc()
)

// priorityPaint maps priority badge colours onto terminal colours.
func priorityPaint(label string) string {
	switch strings.ToLower(label) {
	case "critical", "highest", "high":
		return color.New(color.FgHiRed, color.Bold).Sprint(label)
	case "major", "medium":
		return color.New(color.FgYellow).Sprint(label)
	case "minor", "low":
		return color.New(color.FgHiBlue).Sprint(label)
	default:
		return mutedColor(label)
	}
}

func statusPaint(status string) string {
	switch testcase.ExecutionStatus(status) {
	case testcase.StatusPass:
		return successColor(status)
	case testcase.StatusFail:
		return errorColor(status)
	case testcase.StatusBlocked:
		return color.New(color.FgYellow).Sprint(status)
	default:
		return mutedColor(status)
	}
}

// renderCases writes the test case table, or the empty-table message.
func renderCases(w io.Writer, rows []client.DisplayRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedColor(client.EmptyTableMessage))
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Steps", "Expected Result", "Priority", "Status"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range rows {
		table.Append([]string{
			r.ID,
			r.Title,
			r.Steps,
			r.ExpectedResult,
			priorityPaint(r.Priority),
			statusPaint(r.Status),
		})
	}
	table.Render()
}

// renderIssues writes one page of issues followed by the range label.
func renderIssues(w io.Writer, issues []tracker.Issue, pager *tracker.Pager) {
	if len(issues) == 0 {
		fmt.Fprintln(w, mutedColor(client.NoIssuesMessage))
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Summary", "Type", "Status", "Priority", "Assignee"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, is := range issues {
		table.Append([]string{
			infoColor(is.Key),
			client.Truncate(is.Summary, 60),
			client.OrPlaceholder(is.IssueType, client.PlaceholderText),
			client.OrPlaceholder(is.Status, client.PlaceholderText),
			priorityPaint(client.PriorityLabel(is.Priority)),
			client.OrPlaceholder(is.Assignee, client.Unassigned),
		})
	}
	table.Render()
	fmt.Fprintln(w, mutedColor(pager.RangeLabel()))
}

// consoleNotifier reports generation progress on stderr.
type consoleNotifier struct {
	w io.Writer
}

func (n consoleNotifier) Loading(message string) func() {
	fmt.Fprintln(n.w, infoColor(message))
	return func() {}
}

func (n consoleNotifier) Success(message string) {
	fmt.Fprintln(n.w, successColor("✓ "+message))
}

func (n consoleNotifier) Error(err error) {
	fmt.Fprintln(n.w, errorColor("✗ "+err.Error()))
}
