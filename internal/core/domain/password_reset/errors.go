package passwordreset

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken       = errors.New("invalid password reset token")
	ErrExpiredOrUsedToken = errors.New("password reset token has expired or been used")
)

// TransportError is a failed notification delivery. It is never returned to the
// requester of a reset.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not deliver password reset notification: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
