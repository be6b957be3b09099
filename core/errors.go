package core

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("authentication required")
	ErrForbidden            = errors.New("insufficient role")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidHashFormat    = errors.New("invalid password hash format")
	ErrNotFound             = errors.New("not found")
)
