package user

import "context"

type ResetTokenGenerator interface {
	GenerateResetToken() ResetToken
}

// ResetTokenSender delivers the token out of band. The default
// implementation only logs the reset link.
type ResetTokenSender interface {
	SendResetToken(ctx context.Context, user User, token ResetToken) error
}
