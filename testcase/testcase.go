// Package testcase defines the canonical test case shape exchanged between the
// generation gateway and its clients, and the normaliser that maps model
// output onto it.
package testcase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Priority is the importance of a test case.
type Priority string

// Known priorities. Output is always one of these casings.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority maps a priority case-insensitively onto its canonical form.
// Unrecognised values are returned trimmed but otherwise untouched.
func ParsePriority(s string) Priority {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "low":
		return PriorityLow
	case "medium":
		return PriorityMedium
	case "high":
		return PriorityHigh
	default:
		return Priority(trimmed)
	}
}

// Valid reports whether p is one of Low, Medium or High.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ExecutionStatus is the client-side run state of a test case.
// It is never produced or stored by the server.
type ExecutionStatus string

// Execution states, in the order a user cycles through them.
const (
	StatusUnexecuted ExecutionStatus = "UNEXECUTED"
	StatusPass       ExecutionStatus = "PASS"
	StatusFail       ExecutionStatus = "FAIL"
	StatusBlocked    ExecutionStatus = "BLOCKED"
)

var statusCycle = []ExecutionStatus{StatusUnexecuted, StatusPass, StatusFail, StatusBlocked}

// ParseExecutionStatus parses a status case-insensitively.
// The empty string maps to UNEXECUTED.
func ParseExecutionStatus(s string) (ExecutionStatus, error) {
	if strings.TrimSpace(s) == "" {
		return StatusUnexecuted, nil
	}
	want := ExecutionStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range statusCycle {
		if st == want {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown execution status %q", s)
}

// Next returns the status that follows s in the UI cycle.
func (s ExecutionStatus) Next() ExecutionStatus {
	for i, st := range statusCycle {
		if st == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return StatusUnexecuted
}

// TestCase is a single verification scenario.
type TestCase struct {
	ID             ID       `json:"id"`
	Title          string   `json:"title"`
	Preconditions  string   `json:"preconditions,omitempty"`
	Steps          Text     `json:"steps"`
	ExpectedResult Text     `json:"expectedResult"`
	Priority       Priority `json:"priority"`
}

// ID identifies a test case. Models send either JSON numbers or strings;
// the original kind is kept so that re-encoding is lossless.
type ID struct {
	value   string
	numeric bool
}

// StringID returns a string identifier.
func StringID(s string) ID { return ID{value: s} }

// IntID returns a numeric identifier.
func IntID(n int) ID { return ID{value: strconv.Itoa(n), numeric: true} }

func (id ID) String() string { return id.value }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return id.value == "" }

// Int returns the integer value of a numeric id, or of a string id that
// holds a plain decimal integer ("7" but not "TC-7").
func (id ID) Int() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(id.value))
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID{value: n.String(), numeric: true}
	return nil
}

// Text is a free-form field that models emit either as one (often
// multi-line) string or as a list of strings. The original shape survives
// a decode/encode round trip.
type Text struct {
	value string
	items []string
	list  bool
}

// NewText returns a single-string text.
func NewText(s string) Text { return Text{value: s} }

// NewTextList returns a list text.
func NewTextList(items ...string) Text {
	return Text{items: append([]string(nil), items...), list: true}
}

// IsList reports whether the text was supplied as a list.
func (t Text) IsList() bool { return t.list }

// Items returns the list entries, or a single entry for string text.
func (t Text) Items() []string {
	if t.list {
		return append([]string(nil), t.items...)
	}
	if t.value == "" {
		return nil
	}
	return []string{t.value}
}

// String joins list entries with newlines.
func (t Text) String() string {
	if t.list {
		return strings.Join(t.items, "\n")
	}
	return t.value
}

// IsEmpty reports whether the text has no visible content.
func (t Text) IsEmpty() bool { return strings.TrimSpace(t.String()) == "" }

// MarshalJSON implements json.Marshaler.
func (t Text) MarshalJSON() ([]byte, error) {
	if t.list {
		if t.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(t.items)
	}
	return json.Marshal(t.value)
}

// UnmarshalJSON implements json.Unmarshaler. Strings and arrays keep their
// shape; any other JSON value is kept as its compact JSON text.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*t = Text{}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = NewText(s)
	case data[0] == '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		items := make([]string, 0, len(raw))
		for _, r := range raw {
			items = append(items, scalarString(r))
		}
		*t = Text{items: items, list: true}
	default:
		*t = NewText(scalarString(data))
	}
	return nil
}

// scalarString renders a JSON value as display text: strings are unquoted,
// everything else is compacted JSON.
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
