package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidResetToken covers absent, expired and already consumed
	// tokens alike so the caller can not tell them apart.
	ErrInvalidResetToken = errors.New("invalid password reset token")
)
