package service

import "errors"

// Shared service errors, translated to HTTP status codes at the handler
// boundary. ErrNotFound deliberately covers both "absent" and "exists but
// forbidden" on resource reads so existence never leaks.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("invalid input")
	ErrHouseholdAccess = errors.New("access denied to household")
	ErrCategoryAccess  = errors.New("access denied to category")
	ErrAdminRequired   = errors.New("admin role required")
)
