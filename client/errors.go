package client

import (
	"errors"
	"fmt"
)

// ErrNothingToExport is returned when exporting an empty table.
var ErrNothingToExport = errors.New("no test cases to export")

// ValidationError is a client-side input error. It never reaches the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NetworkError reports a failed gateway call: a transport failure
// (StatusCode 0) or a non-2xx response.
type NetworkError struct {
	StatusCode int
	// Message is the gateway's error message, when it sent one.
	Message string
	// Raw is the model output the gateway attached to a malformed-response error.
	Raw string
	Err error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.StatusCode != 0:
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("gateway unreachable: %v", e.Err)
	default:
		return "Failed to generate test cases"
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
