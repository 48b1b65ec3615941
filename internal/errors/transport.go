package errors

import (
	stdErrors "errors"
	"fmt"
)

// TransportKind classifies a failure that happened during the network exchange.
type TransportKind int

const (
	// KindOther is any transport failure that does not fit the other kinds.
	KindOther TransportKind = iota
	// KindHTTPStatus is a response with a non-2xx status code.
	KindHTTPStatus
	// KindConnection means the remote end could not be reached.
	KindConnection
	// KindTimeout means the exchange did not complete in time.
	KindTimeout
)

func (k TransportKind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http_status"
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// TransportError represents a failed request to an external API
type TransportError struct {
	Kind       TransportKind
	StatusCode int // Set only for KindHTTPStatus
	Err        error
}

func (e *TransportError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("transport error (%s): HTTP %d", e.Kind, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("transport error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("transport error (%s)", e.Kind)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError of the given kind wrapping err
func NewTransportError(kind TransportKind, err error) *TransportError {
	return &TransportError{Kind: kind, Err: err}
}

// NewHTTPStatusError creates a TransportError for a non-2xx response
func NewHTTPStatusError(statusCode int) *TransportError {
	return &TransportError{Kind: KindHTTPStatus, StatusCode: statusCode}
}

// IsTransportError checks if err is a TransportError (even when wrapped)
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return stdErrors.As(err, &transportErr)
}

// TransportKindOf returns the kind of the TransportError in err's chain.
// The second return value is false if err carries no TransportError.
func TransportKindOf(err error) (TransportKind, bool) {
	var transportErr *TransportError
	if !stdErrors.As(err, &transportErr) {
		return KindOther, false
	}
	return transportErr.Kind, true
}
