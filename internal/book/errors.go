package book

import "errors"

var (
	// ErrInvalidRequest is returned when search parameters fail validation.
	ErrInvalidRequest = errors.New("invalid search request")
)
