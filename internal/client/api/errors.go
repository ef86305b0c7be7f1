package api

import "errors"

// Sentinel errors returned by the transport. Callers match them with
// errors.Is; anything not listed here is wrapped in ErrServer.
var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrNotFound           = errors.New("not found")
	ErrServer             = errors.New("server error")
	ErrValidation         = errors.New("validation error")
)
