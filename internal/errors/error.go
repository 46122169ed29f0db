package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryBootstrap  Category = "bootstrap"
	CategoryNavigation Category = "navigation"
	CategoryModule     Category = "module"
	CategoryCLI        Category = "cli"
)

// NavkitError is a structured error with a stable code, a category, and
// optional fix suggestions for terminal display.
type NavkitError struct {
	// Code is a unique error identifier (e.g., "N001").
	Code string

	// Category is the error type (config, bootstrap, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *NavkitError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *NavkitError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *NavkitError) WithSuggestion(s string) *NavkitError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *NavkitError) WithExample(ex string) *NavkitError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *NavkitError) WithDetail(d string) *NavkitError {
	e.Detail = d
	return e
}

// WithMessagef replaces the template message with a formatted one.
// The original message from the registry is kept as Detail when no
// detail was set yet.
func (e *NavkitError) WithMessagef(format string, args ...any) *NavkitError {
	if e.Detail == "" {
		e.Detail = e.Message
	}
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *NavkitError) Wrap(err error) *NavkitError {
	e.Wrapped = err
	return e
}

// New creates a NavkitError from a registered error code.
func New(code string) *NavkitError {
	template, ok := registry[code]
	if !ok {
		return &NavkitError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &NavkitError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new NavkitError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *NavkitError {
	return &NavkitError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a NavkitError.
func FromError(err error, code string) *NavkitError {
	if err == nil {
		return nil
	}
	if ne, ok := err.(*NavkitError); ok {
		return ne
	}
	return New(code).Wrap(err)
}
