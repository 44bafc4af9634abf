package model

import "errors"

// Error kinds surfaced by the stores. Callers wrap them with detail and
// match with errors.Is; only the HTTP layer turns them into status codes.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
)
