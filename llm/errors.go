package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for classifying provider errors. Nothing in this package
// retries; the classification feeds logs and metrics.

// TransientError represents a temporary failure (network, rate limit, 5xx).
type TransientError struct {
	err error
}

func (e *TransientError) Error() string {
	return e.err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.err
}

// NewTransientError wraps an error as transient.
func NewTransientError(err error) error {
	return &TransientError{err: err}
}

// FatalError represents a permanent failure (auth, bad request, bad config).
type FatalError struct {
	err error
}

func (e *FatalError) Error() string {
	return e.err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.err
}

// NewFatalError wraps an error as fatal.
func NewFatalError(err error) error {
	return &FatalError{err: err}
}

// IsTransient returns true if the error is transient.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsFatal returns true if the error is fatal.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// ClassifyStatus wraps a provider error according to its HTTP status code.
// Rate limiting and server errors are transient; everything else is fatal.
func ClassifyStatus(statusCode int, err error) error {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return NewTransientError(err)
	case statusCode >= 500:
		return NewTransientError(err)
	default:
		return NewFatalError(err)
	}
}

// StatusError builds the error for a non-200 provider response, truncating
// the body.
func StatusError(statusCode int, body []byte) error {
	bodyStr := string(body)
	if len(bodyStr) > 200 {
		bodyStr = bodyStr[:200] + "..."
	}
	return ClassifyStatus(statusCode, fmt.Errorf("model API error (status %d): %s", statusCode, bodyStr))
}
