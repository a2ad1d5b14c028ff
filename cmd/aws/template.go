package main

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Placeholders must match the template data built by implementations/email.
const (
	passwordResetSubject = "Reset your ProposalAI password"

	passwordResetHtml = `<p>Hi {{name}},</p>
<p>We received a request to reset the password of your ProposalAI account.</p>
<p><a href="{{passwordResetUrl}}">Choose a new password</a></p>
<p>The link works once and expires at {{expiresAt}}.</p>
<p>If you did not request a reset, you can ignore this email.</p>`

	passwordResetText = `Hi {{name}},

We received a request to reset the password of your ProposalAI account.

Choose a new password: {{passwordResetUrl}}

The link works once and expires at {{expiresAt}}.

If you did not request a reset, you can ignore this email.`

	testTemplateData = `{"name": "Test", "passwordResetUrl": "https://example.com/reset-password?token=test", "expiresAt": "Mon, 01 May 2023 13:00:00 UTC"}`
)

func passwordResetTemplate(name string) *types.Template {
	return &types.Template{
		TemplateName: aws.String(name),
		SubjectPart:  aws.String(passwordResetSubject),
		HtmlPart:     aws.String(passwordResetHtml),
		TextPart:     aws.String(passwordResetText),
	}
}
