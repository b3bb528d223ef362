package client

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mario1918/TestCaseGenie/testcase"
)

// Placeholders shown for missing values.
const (
	PlaceholderID       = "-"
	PlaceholderText     = "N/A"
	PlaceholderPriority = "Medium"
	EmptyTableMessage   = "No test cases generated yet."
	NoIssuesMessage     = "No issues found"
	Unassigned          = "Unassigned"
)

// Badge colours.
const (
	colorRed     = "#E2483D"
	colorOrange  = "#F68909"
	colorBlue    = "#4688EC"
	colorGray    = "#6C757D"
	colorGreen   = "#82B536"
	colorLight   = "#E9ECEF"
	colorSky     = "#8FB8F6"
	colorDone    = "#B3DF72"
	colorToDo    = "#BFC1C4"
	colorOpen    = "#CECFD2"
	colorDefault = colorGray
)

var priorityColors = map[string]string{
	"critical": colorRed,
	"highest":  colorRed,
	"high":     colorRed,
	"major":    colorOrange,
	"medium":   colorOrange,
	"minor":    colorBlue,
	"low":      colorBlue,
	"lowest":   colorGray,
}

var statusColors = map[string]string{
	"to-do":       colorToDo,
	"to do":       colorToDo,
	"open":        colorOpen,
	"in progress": colorSky,
	"closed":      colorDone,
	"done":        colorDone,
}

var issueTypeColors = map[string]string{
	"story":       colorGreen,
	"bug":         colorRed,
	"new feature": colorGreen,
	"sub-task":    colorBlue,
	"subtask":     colorBlue,
	"test":        colorSky,
}

var (
	lineBreakPattern = regexp.MustCompile(`\r?\n`)
	// leadingMarkerPattern matches a list number such as "2. " opening a line.
	leadingMarkerPattern = regexp.MustCompile(`^(\d+)\.\s+`)
	// inlineMarkerPattern matches a list number inside a line. Whitespace is
	// required on both sides, so "2.50", "10.4" and "192.168.0.1" never match.
	inlineMarkerPattern = regexp.MustCompile(`\s(\d+)\.\s+`)
)

// paragraphPattern matches blank-line paragraph breaks.
var paragraphPattern = regexp.MustCompile(`\n{2,}`)

// DisplayRow is a row with every placeholder applied, ready to render.
type DisplayRow struct {
	Key            int
	ID             string
	Title          string
	Steps          string
	ExpectedResult string
	Priority       string
	PriorityColor  string
	Status         string
}

// Display converts a table row into its rendered form.
func Display(r Row) DisplayRow {
	id := r.Case.ID.String()
	if strings.TrimSpace(id) == "" {
		id = PlaceholderID
	}
	title := r.Case.Title
	if strings.TrimSpace(title) == "" {
		title = PlaceholderText
	}
	status := r.Status
	if status == "" {
		status = testcase.StatusUnexecuted
	}

	return DisplayRow{
		Key:            r.Key,
		ID:             id,
		Title:          title,
		Steps:          FormatSteps(r.Case.Steps),
		ExpectedResult: FormatText(r.Case.ExpectedResult),
		Priority:       PriorityLabel(string(r.Case.Priority)),
		PriorityColor:  PriorityColor(string(r.Case.Priority)),
		Status:         string(status),
	}
}

// FormatSteps renders steps as a numbered list, one step per line.
// A single step is returned without a number.
func FormatSteps(steps testcase.Text) string {
	var items []string
	if steps.IsList() {
		for _, s := range steps.Items() {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
	} else {
		for _, line := range lineBreakPattern.Split(steps.String(), -1) {
			for _, s := range splitNumberedLine(strings.TrimSpace(line)) {
				if s = strings.TrimSpace(s); s != "" {
					items = append(items, s)
				}
			}
		}
	}

	switch len(items) {
	case 0:
		return PlaceholderText
	case 1:
		return items[0]
	}

	var sb strings.Builder
	for i, s := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, s)
	}
	return sb.String()
}

// splitNumberedLine drops a leading list number. A line opening with "1. "
// is also split at the inline markers that continue the sequence
// ("1. Open 2. Click 3. Check"); any other number stays part of the text.
func splitNumberedLine(line string) []string {
	m := leadingMarkerPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return []string{line}
	}
	rest := line[m[1]:]
	if line[m[2]:m[3]] != "1" {
		return []string{rest}
	}

	var parts []string
	next, start := 2, 0
	for _, im := range inlineMarkerPattern.FindAllStringSubmatchIndex(rest, -1) {
		if n, _ := strconv.Atoi(rest[im[2]:im[3]]); n != next {
			continue
		}
		parts = append(parts, rest[start:im[0]])
		start = im[1]
		next++
	}
	return append(parts, rest[start:])
}

// FormatText renders a string or list value, or the placeholder when empty.
func FormatText(t testcase.Text) string {
	if t.IsEmpty() {
		return PlaceholderText
	}
	return strings.TrimSpace(t.String())
}

// PriorityLabel capitalises a priority for display: "high" becomes "High".
// An empty priority shows as Medium.
func PriorityLabel(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return PlaceholderPriority
	}
	r, size := utf8.DecodeRuneInString(p)
	return string(unicode.ToUpper(r)) + strings.ToLower(p[size:])
}

// PriorityColor returns the badge colour for a priority.
func PriorityColor(p string) string {
	if p = strings.ToLower(strings.TrimSpace(p)); p == "" {
		p = "medium"
	}
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return colorDefault
}

// StatusColor returns the badge colour for an issue status.
func StatusColor(status string) string {
	if c, ok := statusColors[strings.ToLower(strings.TrimSpace(status))]; ok {
		return c
	}
	return colorLight
}

// IssueTypeColor returns the badge colour for an issue type.
func IssueTypeColor(issueType string) string {
	if c, ok := issueTypeColors[strings.ToLower(strings.TrimSpace(issueType))]; ok {
		return c
	}
	return colorLight
}

// OrPlaceholder returns s, or placeholder when s is blank.
func OrPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// Truncate shortens s to max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}

// FormatDescription folds an issue description for a detail view: blank-line
// paragraph breaks are kept, single line breaks become spaces.
func FormatDescription(text string) string {
	if strings.TrimSpace(text) == "" {
		return "No description provided"
	}
	paragraphs := paragraphPattern.Split(text, -1)
	for i, p := range paragraphs {
		paragraphs[i] = strings.ReplaceAll(p, "\n", " ")
	}
	return strings.Join(paragraphs, "\n\n")
}

// BrowseURL returns the tracker web link for an issue key.
func BrowseURL(prefix, key string) string {
	if prefix == "" || key == "" {
		return ""
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + key
}
