package config

import (
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse    = "CONFIG_PARSE"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
)

// UserError represents a user-friendly error with actionable suggestions.
type UserError struct {
	Code       string // Error code for categorization (e.g., "CONFIG_NOT_FOUND")
	Message    string // User-friendly error message
	Context    string // File path or other location context
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)

	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}

	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewConfigNotFoundError creates an error for a missing config file.
func NewConfigNotFoundError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigNotFound,
		Message:    "configuration file not found",
		Context:    path,
		Suggestion: "create leadmagnet.yaml or pass --config with the file's location",
	}
}

// NewConfigParseError creates an error for an unparseable config file.
func NewConfigParseError(path string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeConfigParse,
		Message:    "configuration file is not valid YAML",
		Context:    path,
		Suggestion: "check indentation and quoting near the reported line",
		Underlying: err,
	}
}

// NewConfigInvalidError creates an error for a config that parsed but
// fails validation.
func NewConfigInvalidError(path, detail string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigInvalid,
		Message:    detail,
		Context:    path,
		Suggestion: "see leadmagnet.yaml reference in the README",
	}
}
