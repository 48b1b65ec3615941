package errors

import (
	stdErrors "errors"
	"fmt"
)

// ParseError represents a response body that could not be interpreted
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError with the given message and cause
func NewParseError(message string, err error) *ParseError {
	return &ParseError{Message: message, Err: err}
}

// IsParseError reports whether err is a ParseError (even when wrapped).
func IsParseError(err error) bool {
	var parseErr *ParseError
	return stdErrors.As(err, &parseErr)
}
