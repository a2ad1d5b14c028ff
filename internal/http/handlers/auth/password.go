package auth

import validation "github.com/go-ozzo/ozzo-validation"

const (
	PASSWORD_MIN_LEN = 8
	PASSWORD_MAX_LEN = 256
)

// PasswordRules is the password policy for every endpoint that sets a password.
func PasswordRules() []validation.Rule {
	return []validation.Rule{validation.Required, validation.Length(PASSWORD_MIN_LEN, PASSWORD_MAX_LEN)}
}
