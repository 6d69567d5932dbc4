package domain

import "errors"

var (
	// ErrValidation signals a missing or malformed request parameter.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing content record.
	ErrNotFound = errors.New("content not found")
)
