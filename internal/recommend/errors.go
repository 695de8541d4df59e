package recommend

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by a Predictor or by symptom
// validation matches exactly one of these with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("scoring service unavailable")
	ErrPredictionFailed   = errors.New("prediction failed")
)

// Error is a classified failure. Code is a short machine-readable reason
// (for example "too-short") and Message is safe to show to callers.
type Error struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

// NewError creates an Error of the given kind.
func NewError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap creates an Error of the given kind caused by err.
func Wrap(kind error, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the failure kind of err, or nil when err is not classified.
func KindOf(err error) error {
	for _, kind := range []error{ErrInvalidInput, ErrServiceUnavailable, ErrPredictionFailed} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// MessageOf returns the caller-facing message carried by err, if any.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// CodeOf returns the reason code carried by err, if any.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
