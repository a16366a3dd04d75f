package resettokensender

import (
	"authsvc/internal/core/domain/user"
	"context"
	"encoding/json"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESSender delivers the reset link with a templated SES email.
type SESSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender   string
	template string
	baseURL  url.URL
}

func NewSESSender(
	awsConfig aws.Config,
	sender string,
	template string,
	baseURL url.URL,
) *SESSender {
	return &SESSender{
		ses:      ses.NewFromConfig(awsConfig),
		sender:   sender,
		template: template,
		baseURL:  baseURL,
	}
}

type passwordResetTemplateParams struct {
	PasswordResetUrl string `json:"password_reset_url"`
}

func (s *SESSender) SendResetToken(ctx context.Context, u user.User, token user.ResetToken) error {
	link := s.baseURL
	q := link.Query()
	q.Set("token", string(token))
	link.RawQuery = q.Encode()

	templateParamsBytes, err := json.Marshal(
		passwordResetTemplateParams{PasswordResetUrl: link.String()},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.template,
			TemplateData: &templateParams,
		},
	)
	return err
}
