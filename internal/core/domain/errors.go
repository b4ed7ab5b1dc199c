package domain

import "errors"

// Error taxonomy for the identity core. Handlers map each kind to an HTTP
// status and a stable generic message; the cause behind a credential or
// token failure must never leak beyond its kind.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
)
