package account

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrDuplicateUsername  = errors.New("duplicate_username")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)
