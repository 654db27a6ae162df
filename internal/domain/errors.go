package domain

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidState        = errors.New("invalid lifecycle state")
	ErrCapacityExceeded    = errors.New("ticket capacity exceeded")
	ErrConcurrencyConflict = errors.New("concurrent allocation retry budget exhausted")
	ErrConflict            = errors.New("conflict")
	ErrDuplicateEvent      = errors.New("duplicate provider event")
)
