package services

import (
	"proposalai/internal/app/deps"
	drl "proposalai/internal/core/domain/rate_limiter"
	"proposalai/internal/core/services"
	"proposalai/internal/core/services/auth"
	calculatequote "proposalai/internal/core/services/calculate_quote"
	getcurrentaccount "proposalai/internal/core/services/get_current_account"
	loginwithemail "proposalai/internal/core/services/log_in_with_email"
	ratelimiting "proposalai/internal/core/services/rate_limiting"
	requestpasswordreset "proposalai/internal/core/services/request_password_reset"
	resetpassword "proposalai/internal/core/services/reset_password"
	signupwithemail "proposalai/internal/core/services/sign_up_with_email"
)

type Services struct {
	SignUpWithEmail      services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail       services.Service[loginwithemail.Input, loginwithemail.Result]
	RequestPasswordReset services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
	ResetPassword        services.Service[resetpassword.Input, resetpassword.Result]
	GetCurrentAccount    services.Service[getcurrentaccount.Input, getcurrentaccount.Result]

	CalculateQuote services.Service[calculatequote.Input, calculatequote.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		loginwithemail.New(
			deps.Logger,
			deps.AccountRepository,
			deps.PasswordHasher,
			deps.SessionTokenIssuer,
		),
	)
	s.RequestPasswordReset = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		requestpasswordreset.NewWithNotification(
			deps.Logger,
			deps.PasswordResetSender,
			deps.Config.NotificationTimeout,
			requestpasswordreset.New(
				deps.Logger,
				deps.AccountRepository,
				deps.ResetTokenRepository,
				deps.ResetTokenGenerator,
				deps.Config.PasswordResetValidDuration,
				deps.Now,
			),
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.ResetTokenRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.GetCurrentAccount = auth.WithAuthentication(
		deps.SessionTokenParser,
		deps.AccountRepository,
		getcurrentaccount.New(deps.Logger),
	)

	s.CalculateQuote = auth.WithAuthentication(
		deps.SessionTokenParser,
		deps.AccountRepository,
		calculatequote.New(deps.Logger, deps.DefaultTaxRate),
	)

	return s
}
