package domain

import "errors"

// Repository level errors, translated to API errors by the usecases
var (
	ErrNotFound = errors.New("resource not found")
	// ErrStaleWrite means a conditional update matched no row because the
	// entity changed since it was read
	ErrStaleWrite = errors.New("entity changed since it was read")
)
