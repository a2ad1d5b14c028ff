package email

import (
	"context"
	"encoding/json"
	"net/url"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender                string
	passwordResetTemplate string
	passwordResetBaseUrl  url.URL
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	passwordResetTemplate string,
	passwordResetBaseUrl url.URL,
) *EmailSender {
	return &EmailSender{
		ses:                   ses.NewFromConfig(awsConfig),
		sender:                sender,
		passwordResetTemplate: passwordResetTemplate,
		passwordResetBaseUrl:  passwordResetBaseUrl,
	}
}

func (s *EmailSender) SendPasswordResetToken(ctx context.Context, n passwordreset.Notification) error {
	templateParamsBytes, err := json.Marshal(newPasswordResetTemplateParams(s.passwordResetBaseUrl, n))
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(n.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordResetTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type passwordResetTemplateParams struct {
	Name             string `json:"name"`
	PasswordResetUrl string `json:"passwordResetUrl"`
	ExpiresAt        string `json:"expiresAt"`
}

func newPasswordResetTemplateParams(baseUrl url.URL, n passwordreset.Notification) passwordResetTemplateParams {
	resetUrl := baseUrl
	query := resetUrl.Query()
	query.Set("token", string(n.Token))
	resetUrl.RawQuery = query.Encode()

	return passwordResetTemplateParams{
		Name:             n.Name,
		PasswordResetUrl: resetUrl.String(),
		ExpiresAt:        n.ExpiresAt.UTC().Format(time.RFC1123),
	}
}
