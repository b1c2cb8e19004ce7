package interview

import (
	"errors"
	"fmt"
)

// ErrIncomplete is returned when a step needs every question evaluated first.
var ErrIncomplete = errors.New("interview is not complete")

// ConfigurationError reports a missing or invalid configuration value. It is fatal for the step
// that produced it and is surfaced before any generation attempt.
type ConfigurationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", msg, e.Cause)
	}
	return "configuration error: " + msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// ParseError describes a model response that did not match the expected layout.
// Components recover from it locally and only log it.
type ParseError struct {
	Kind  string
	Raw   string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %s response: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("parse %s response", e.Kind)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
