package resettokensender

import (
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/logging"
	"authsvc/internal/core/domain/user"
	"context"
	"net/url"
)

// LogSender simulates out-of-band delivery by logging the reset link.
type LogSender struct {
	log     logging.Logger
	baseURL url.URL
}

func NewLogSender(log logging.Logger, baseURL url.URL) *LogSender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &LogSender{log: log, baseURL: baseURL}
}

func (s *LogSender) SendResetToken(ctx context.Context, u user.User, token user.ResetToken) error {
	link := s.baseURL
	q := link.Query()
	q.Set("token", string(token))
	link.RawQuery = q.Encode()

	s.log.Info(
		ctx,
		"Password reset link (simulated email delivery).",
		logging.Entry("email", u.Email),
		logging.Entry("link", link.String()),
	)
	return nil
}
