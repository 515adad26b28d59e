package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound              = errors.New("resource not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidInput          = errors.New("invalid input")
	ErrDuplicate             = errors.New("duplicate resource")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("access denied")
	ErrConflict              = errors.New("conflict with current state")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrInvoiceImmutable      = errors.New("invoice can no longer be edited")
	ErrAuthorizationRequired = errors.New("approved flight authorization required")
)
