package testcase

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_KeyAliasing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Priority
	}{
		{
			name:  "capitalised only",
			input: `[{"title":"t","Priority":"High"}]`,
			want:  PriorityHigh,
		},
		{
			name:  "lowercase wins over capitalised",
			input: `[{"title":"t","priority":"low","Priority":"High"}]`,
			want:  PriorityLow,
		},
		{
			name:  "empty lowercase falls through to capitalised",
			input: `[{"title":"t","priority":"","Priority":"medium"}]`,
			want:  PriorityMedium,
		},
		{
			name:  "other casings are ignored",
			input: `[{"title":"t","PRIORITY":"High"}]`,
			want:  "",
		},
		{
			name:  "missing priority is empty",
			input: `[{"title":"t"}]`,
			want:  "",
		},
		{
			name:  "unknown priority kept verbatim",
			input: `[{"priority":"Critical"}]`,
			want:  "Critical",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases, err := Normalize(tt.input)
			require.NoError(t, err)
			require.Len(t, cases, 1)
			assert.Equal(t, tt.want, cases[0].Priority)
		})
	}
}

func TestNormalize_AllFieldsCapitalised(t *testing.T) {
	input := `[{
		"Id": 4,
		"Title": "Checkout",
		"Preconditions": "Cart has items",
		"Steps": ["Open cart", "Pay"],
		"ExpectedResult": "Order placed",
		"Priority": "HIGH"
	}]`

	cases, err := Normalize(input)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	tc := cases[0]
	assert.Equal(t, "4", tc.ID.String())
	assert.Equal(t, "Checkout", tc.Title)
	assert.Equal(t, "Cart has items", tc.Preconditions)
	assert.True(t, tc.Steps.IsList())
	assert.Equal(t, []string{"Open cart", "Pay"}, tc.Steps.Items())
	assert.Equal(t, "Order placed", tc.ExpectedResult.String())
	assert.Equal(t, PriorityHigh, tc.Priority)
}

func TestNormalize_MissingFieldsDefaultEmpty(t *testing.T) {
	cases, err := Normalize(`[{}]`)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	out, err := json.Marshal(cases[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"","title":"","steps":"","expectedResult":"","priority":""}`, string(out))
}

func TestNormalize_EmptyArray(t *testing.T) {
	cases, err := Normalize("[]")
	require.NoError(t, err)
	assert.NotNil(t, cases)
	assert.Empty(t, cases)
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "not json"},
		{name: "object instead of array", input: `{"title":"x"}`},
		{name: "null", input: "null"},
		{name: "array of numbers", input: "[1, 2]"},
		{name: "truncated", input: `[{"title": "x"`},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
			assert.Equal(t, tt.input, perr.Raw)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	input := `[
		{"id": 1, "title": "Login", "steps": "1. Open\n2. Submit", "expectedResult": "Logged in", "priority": "High"},
		{"id": "TC-2", "title": "Logout", "preconditions": "Logged in", "steps": ["Click logout"], "expectedResult": ["Session ends", "Redirected"], "priority": "Low"}
	]`

	first, err := Normalize(input)
	require.NoError(t, err)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)

	second, err := Normalize(string(encoded))
	require.NoError(t, err)

	reencoded, err := json.Marshal(second)
	require.NoError(t, err)

	if diff := cmp.Diff(string(encoded), string(reencoded)); diff != "" {
		t.Errorf("normalising normalised output changed it (-first +second):\n%s", diff)
	}
	assert.JSONEq(t, input, string(encoded))
}

func TestID_JSONKinds(t *testing.T) {
	var cases []struct {
		ID ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`[{"id":3},{"id":"3"},{"id":"TC-9"},{"id":null}]`), &cases))

	n, ok := cases[0].ID.Int()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = cases[1].ID.Int()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = cases[2].ID.Int()
	assert.False(t, ok)
	assert.True(t, cases[3].ID.IsZero())

	out, err := json.Marshal(cases)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":3},{"id":"3"},{"id":"TC-9"},{"id":""}]`, string(out))
}

func TestParsePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, ParsePriority("high"))
	assert.Equal(t, PriorityMedium, ParsePriority(" MEDIUM "))
	assert.Equal(t, PriorityLow, ParsePriority("Low"))
	assert.Equal(t, Priority("Blocker"), ParsePriority("Blocker"))
	assert.False(t, Priority("Blocker").Valid())
	assert.True(t, PriorityLow.Valid())
}

func TestExecutionStatus(t *testing.T) {
	st, err := ParseExecutionStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusUnexecuted, st)

	st, err = ParseExecutionStatus("pass")
	require.NoError(t, err)
	assert.Equal(t, StatusPass, st)

	_, err = ParseExecutionStatus("skipped")
	assert.Error(t, err)

	assert.Equal(t, StatusPass, StatusUnexecuted.Next())
	assert.Equal(t, StatusUnexecuted, StatusBlocked.Next())
}
