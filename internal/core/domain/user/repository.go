package user

import (
	c "authsvc/internal/core/domain/common"
	"context"
	"time"
)

type CreateUserInput struct {
	Name         string
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type ResetPasswordInput struct {
	Token        ResetToken
	PasswordHash PasswordHash
	Now          time.Time
}

type UserRepository interface {
	// Create fails with ErrEmailAlreadyExists if the email is taken.
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	GetByResetToken(ctx context.Context, token ResetToken) (User, error)
	// SetResetToken overwrites any pending token for the user.
	SetResetToken(ctx context.Context, id ID, token ResetToken, expiry time.Time) error
	// ResetPassword atomically sets the new password hash and clears the
	// reset token, but only if the given token is still the current one
	// and unexpired. Of concurrent calls bearing the same token exactly
	// one succeeds; the rest fail with ErrInvalidResetToken.
	ResetPassword(ctx context.Context, input ResetPasswordInput) (User, error)
}
