package generator

import (
	"errors"
	"fmt"
)

// GenerationError reports that the model call itself failed.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MalformedResponseError reports model output that could not be turned into
// a test case array. Raw is the text exactly as the model returned it.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("model did not return valid JSON: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// AsMalformed returns the MalformedResponseError in err's chain, if any.
func AsMalformed(err error) (*MalformedResponseError, bool) {
	var m *MalformedResponseError
	if errors.As(err, &m) {
		return m, true
	}
	return nil, false
}

// AsGeneration returns the GenerationError in err's chain, if any.
func AsGeneration(err error) (*GenerationError, bool) {
	var g *GenerationError
	if errors.As(err, &g) {
		return g, true
	}
	return nil, false
}
