package testcase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError reports model output that is not a JSON array of objects.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model output is not a JSON array of test cases: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var errNotArray = errors.New("top-level value is not an array")

// field is a canonical TestCase key.
type field string

const (
	fieldID             field = "id"
	fieldTitle          field = "title"
	fieldPreconditions  field = "preconditions"
	fieldSteps          field = "steps"
	fieldExpectedResult field = "expectedResult"
	fieldPriority       field = "priority"
)

// aliases lists the accepted spellings of f in lookup order: the canonical
// key, then the same key with its first letter upper-cased.
func (f field) aliases() []string {
	name := string(f)
	r, size := utf8.DecodeRuneInString(name)
	capitalized := string(unicode.ToUpper(r)) + name[size:]
	return []string{name, capitalized}
}

// lookupField returns the value stored under f. A canonical key that is
// null or an empty string counts as absent, so a populated alias still wins.
func lookupField(obj map[string]json.RawMessage, f field) (json.RawMessage, bool) {
	for _, key := range f.aliases() {
		v, ok := obj[key]
		if !ok || isBlank(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

func isBlank(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) == 0 || string(v) == "null" || string(v) == `""`
}

// Normalize parses model output (already stripped of code fences) into test
// cases. The input must be a JSON array whose elements are objects. Fields
// are read through the canonical/capitalised alias pair and default to empty
// values; priority is case-normalised.
func Normalize(raw string) ([]TestCase, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		var probe any
		if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
			return nil, &ParseError{Raw: raw, Err: err}
		}
		return nil, &ParseError{Raw: raw, Err: errNotArray}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &elems); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	cases := make([]TestCase, 0, len(elems))
	for i, elem := range elems {
		tc, err := normalizeOne(elem)
		if err != nil {
			return nil, &ParseError{Raw: raw, Err: fmt.Errorf("element %d: %w", i, err)}
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

func normalizeOne(elem json.RawMessage) (TestCase, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
		return TestCase{}, fmt.Errorf("expected an object, got %s", kindOf(elem))
	}

	var tc TestCase
	if v, ok := lookupField(obj, fieldID); ok {
		if err := tc.ID.UnmarshalJSON(v); err != nil {
			tc.ID = StringID(scalarString(v))
		}
	}
	if v, ok := lookupField(obj, fieldTitle); ok {
		tc.Title = scalarString(v)
	}
	if v, ok := lookupField(obj, fieldPreconditions); ok {
		tc.Preconditions = scalarString(v)
	}
	if v, ok := lookupField(obj, fieldSteps); ok {
		if err := tc.Steps.UnmarshalJSON(v); err != nil {
			return TestCase{}, fmt.Errorf("steps: %w", err)
		}
	}
	if v, ok := lookupField(obj, fieldExpectedResult); ok {
		if err := tc.ExpectedResult.UnmarshalJSON(v); err != nil {
			return TestCase{}, fmt.Errorf("expectedResult: %w", err)
		}
	}
	if v, ok := lookupField(obj, fieldPriority); ok {
		tc.Priority = ParsePriority(scalarString(v))
	}
	return tc, nil
}

func kindOf(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return "nothing"
	}
	switch v[0] {
	case '[':
		return "array"
	case '"':
		return "string"
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	default:
		return "number"
	}
}
