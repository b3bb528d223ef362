package llm

import (
	"regexp"
	"strings"
)

// Pre-compiled patterns for cleaning model output.
var (
	// openingFencePattern matches a leading ``` marker with an optional language tag.
	openingFencePattern = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	// closingFencePattern matches a trailing ``` marker.
	closingFencePattern = regexp.MustCompile("\r?\n?[ \t]*```$")
	// trailingCommaPattern matches trailing commas before ] or }.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// StripCodeFences removes a leading and a trailing triple-backtick fence
// (```json, ```JSON, ``` …) and the whitespace around them. Text without
// fences is only trimmed.
func StripCodeFences(content string) string {
	s := strings.TrimSpace(content)
	s = openingFencePattern.ReplaceAllString(s, "")
	s = closingFencePattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// RepairJSON removes JavaScript-style line comments and trailing commas,
// two artifacts models commonly produce. Valid JSON passes through unchanged.
func RepairJSON(raw string) string {
	lines := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, stripLineComment(line))
	}
	result := strings.Join(cleaned, "\n")

	return trailingCommaPattern.ReplaceAllString(result, "$1")
}

// stripLineComment removes a // comment from a JSON line, respecting string values.
// For example:
//
//	"Navigate to https://example.com/",  // first step  → "Navigate to https://example.com/",
//	"url": "http://example.com"                        → "url": "http://example.com" (no change)
func stripLineComment(line string) string {
	if !strings.Contains(line, "//") {
		return line
	}

	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if !inString && ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}
