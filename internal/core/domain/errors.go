package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput rejects caller-supplied input before any provider call.
	ErrInvalidInput = errors.New("invalid input")

	ErrProviderTimeout   = errors.New("provider timeout")
	ErrProvider          = errors.New("provider failure")
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrMalformedCandidate marks a search-provider record that violates its
	// contract (no usable position). Provider data, not caller data.
	ErrMalformedCandidate = errors.New("malformed candidate")

	ErrInvalidModelOutput = errors.New("invalid model output")
	ErrSchemaViolation    = errors.New("schema violation")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// ModelOutputError is returned when the generative provider produced text
// that does not satisfy the declared output contract. The raw text is kept
// for diagnosis and must never be swallowed on the way up.
type ModelOutputError struct {
	Kind      error
	Operation string
	RawOutput string
	Err       error
}

func (e *ModelOutputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Operation, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Operation, e.Kind, e.Err)
}

func (e *ModelOutputError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// RawModelOutput extracts the offending model text from an error chain,
// or "" when the failure did not come from model output.
func RawModelOutput(err error) string {
	var moErr *ModelOutputError
	if errors.As(err, &moErr) {
		return moErr.RawOutput
	}
	return ""
}
