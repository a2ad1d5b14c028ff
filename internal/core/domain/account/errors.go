package account

import "errors"

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrAccountDoesNotExist = errors.New("account does not exist")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidSessionToken = errors.New("invalid session token")
)
