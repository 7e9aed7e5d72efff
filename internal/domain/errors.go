package domain

import "errors"

// Closed set of failure kinds surfaced by validation and the user store.
// Callers classify with errors.Is; the HTTP layer owns the status mapping.
var (
	ErrMalformedBody = errors.New("malformed request body")

	ErrInvalidID    = errors.New("invalid id parameter")
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidAge   = errors.New("invalid age")
	ErrEmptyUpdate  = errors.New("no update data")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)
