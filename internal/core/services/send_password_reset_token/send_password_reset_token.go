package sendpasswordresettoken

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/logging"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Email c.Email
}

// Result is identical whether or not the email is registered; the token
// is set only so the HTTP layer can expose it in test mode.
type Result struct {
	Token user.ResetToken
}

type service struct {
	log                 logging.Logger
	userRepository      user.UserRepository
	resetTokenGenerator user.ResetTokenGenerator
	resetTokenSender    user.ResetTokenSender
	validDuration       time.Duration
	now                 func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	resetTokenGenerator user.ResetTokenGenerator,
	resetTokenSender user.ResetTokenSender,
	validDuration time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if resetTokenGenerator == nil {
		panic(e.NewNilArgumentError("resetTokenGenerator"))
	}
	if resetTokenSender == nil {
		panic(e.NewNilArgumentError("resetTokenSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                 log,
		userRepository:      userRepository,
		resetTokenGenerator: resetTokenGenerator,
		resetTokenSender:    resetTokenSender,
		validDuration:       validDuration,
		now:                 now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Succeed without issuing anything so the response can not be
		// used to probe which emails are registered.
		s.log.Info(
			ctx,
			"Password reset requested for unknown email.",
			logging.Entry("email", input.Email),
		)
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token := s.resetTokenGenerator.GenerateResetToken()
	expiry := s.now().Add(s.validDuration)
	err = s.userRepository.SetResetToken(ctx, u.ID, token, expiry)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = s.resetTokenSender.SendResetToken(ctx, u, token)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued.",
		logging.Entry("userID", u.ID),
		logging.Entry("expiry", expiry),
	)
	return Result{Token: token}, nil
}
