package apperrors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrOwnershipMismatch = errors.New("resource owned by another user")
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
)
