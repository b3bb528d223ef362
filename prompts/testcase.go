// Package prompts builds the instruction text sent to the generation model.
package prompts

import (
	"fmt"
	"strings"
)

// DefaultNavigationURL is the page every generated step list starts from.
const DefaultNavigationURL = "https://a-qa-my.siliconexpert.com/"

// TestCaseParams holds the inputs of a test case generation prompt.
type TestCaseParams struct {
	// Story is the requirement text. It is interpolated verbatim.
	Story string

	// NavigationURL is the page the first step navigates to.
	// Empty uses DefaultNavigationURL.
	NavigationURL string

	// Optional issue context, set when generating from a tracker issue.
	IssueKey  string
	Summary   string
	IssueType string
	Status    string
}

// TestCaseSystemPrompt returns the fixed role and format preamble.
func TestCaseSystemPrompt(navigationURL string) string {
	if strings.TrimSpace(navigationURL) == "" {
		navigationURL = DefaultNavigationURL
	}

	return fmt.Sprintf(`You are an expert Senior Software Tester and QA Test Case Generator.
Generate well-structured positive, negative, boundary and edge test cases in strict JSON format only.
Do not include any explanations or extra text.
Write the Steps in a numbered list format. Each step should be a single line.
For steps, always start with "Navigate to %s"

Format:
[
  {
    "id": "number",
    "title": "string",
    "steps": "string",
    "expectedResult": "string",
    "priority": "Low | Medium | High"
  }
]`, navigationURL)
}

// TestCasePrompt returns the full prompt for one generation call.
// The story is not validated; callers reject empty input before this point.
func TestCasePrompt(p TestCaseParams) string {
	var sb strings.Builder
	sb.WriteString(TestCaseSystemPrompt(p.NavigationURL))
	sb.WriteString("\n\n")

	if ctx := issueContext(p); ctx != "" {
		sb.WriteString(ctx)
		sb.WriteString("\n")
	}

	sb.WriteString("User Story:\n")
	sb.WriteString(p.Story)
	return sb.String()
}

func issueContext(p TestCaseParams) string {
	var lines []string
	if p.IssueKey != "" {
		lines = append(lines, "Issue: "+p.IssueKey)
	}
	if p.Summary != "" {
		lines = append(lines, "Summary: "+p.Summary)
	}
	if p.IssueType != "" {
		lines = append(lines, "Type: "+p.IssueType)
	}
	if p.Status != "" {
		lines = append(lines, "Status: "+p.Status)
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
