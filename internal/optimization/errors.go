package optimization

import (
	"errors"
	"fmt"
)

// Kind classifies optimization errors.
type Kind int

const (
	// KindUnknown is the zero value for errors without a classification.
	KindUnknown Kind = iota
	// KindConfig covers invalid run parameters: non-positive dimension
	// or swarm size, inverted bounds, unrecognized strategy names.
	KindConfig
	// KindResource covers storage limits, such as a swarm size above
	// the safety cap.
	KindResource
	// KindEvaluation covers failures reported by the objective function.
	KindEvaluation
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindResource:
		return "resource"
	case KindEvaluation:
		return "evaluation"
	default:
		return "unknown"
	}
}

// Error represents an optimization error with context
// that can be wrapped with additional information.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// Op is the operation that caused the error.
	Op string
	// Message describes the error that occurred.
	Message string
	// Err is the underlying error that triggered this one, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	prefix := e.Kind.String()
	if e.Op != "" {
		prefix = fmt.Sprintf("%s: %s", e.Op, prefix)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError creates a new optimization error with the given kind and message.
// The op parameter describes the operation that caused the error.
func NewError(kind Kind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

// NewErrorf creates a new optimization error with a formatted message.
func NewErrorf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with additional context.
// If err is nil, WrapError returns nil.
func WrapError(err error, kind Kind, op, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the kind of err if it is (or wraps) an optimization
// Error, and KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
