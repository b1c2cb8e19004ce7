// Package ai defines the boundary to external text-generation services.
package ai

import (
	"context"
	"fmt"
)

// Completer sends a prompt to a text-generation service and returns the raw text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ServiceError is returned when the text-generation call fails, times out or yields an empty
// payload. Callers surface it to the user; it is never retried internally.
type ServiceError struct {
	Provider string
	Model    string
	Message  string
	Cause    error
}

func (e *ServiceError) Error() string {
	target := e.Provider
	if e.Model != "" {
		target = fmt.Sprintf("%s/%s", e.Provider, e.Model)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", target, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", target, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
