package user

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"fmt"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// ResetToken is a single-use secret proving control over the account email.
// At most one token is outstanding per user; issuing a new one supersedes
// the old one because lookups go by the current token value only.
type ResetToken string

type User struct {
	ID               ID
	Name             string
	Email            c.Email
	PasswordHash     PasswordHash
	CreatedAt        time.Time
	ResetToken       c.Optional[ResetToken]
	ResetTokenExpiry c.Optional[time.Time]
}

// Validate checks the record invariant: reset token and its expiry are
// both set or both absent.
func (u *User) Validate() error {
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	if u.ResetToken.IsPresent != u.ResetTokenExpiry.IsPresent {
		return e.NewInvalidStateError(
			fmt.Sprintf("reset token and expiry must be set together for user %d", u.ID),
		)
	}
	return nil
}

// HasValidResetToken reports whether a reset is pending and unexpired.
func (u *User) HasValidResetToken(now time.Time) bool {
	if !u.ResetToken.IsPresent || !u.ResetTokenExpiry.IsPresent {
		return false
	}
	return !now.After(u.ResetTokenExpiry.Value)
}
