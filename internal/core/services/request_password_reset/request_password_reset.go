package requestpasswordreset

import (
	"context"
	"errors"
	"proposalai/internal/core/domain/account"
	c "proposalai/internal/core/domain/common"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/domain/logging"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"proposalai/internal/core/services"
	"time"
)

type Input struct {
	Email account.Email
}

func (i Input) GetRateLimitKey() string {
	return "request-password-reset::" + string(i.Email)
}

// Result carries the issued token from the issuing service to the notifying
// one. Callers outside the service layer always receive an empty Result.
type Result struct {
	Issued c.Optional[passwordreset.Notification]
}

type service struct {
	log                  logging.Logger
	accountRepository    account.Repository
	resetTokenRepository passwordreset.Repository
	tokenGenerator       passwordreset.TokenGenerator
	validity             time.Duration
	now                  func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.Repository,
	resetTokenRepository passwordreset.Repository,
	tokenGenerator passwordreset.TokenGenerator,
	validity time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if resetTokenRepository == nil {
		panic(e.NewNilArgumentError("resetTokenRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if validity <= 0 {
		panic("password reset token validity must be positive")
	}
	return &service{
		log:                  log,
		accountRepository:    accountRepository,
		resetTokenRepository: resetTokenRepository,
		tokenGenerator:       tokenGenerator,
		validity:             validity,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	a, err := s.accountRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get account for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, err := s.tokenGenerator.GenerateToken()
	if err != nil {
		s.log.Error(ctx, "Could not generate password reset token.", logging.Entry("err", err))
		return result, err
	}

	now := s.now()
	resetToken, err := s.resetTokenRepository.Create(ctx, passwordreset.CreateInput{
		AccountID: a.ID,
		Digest:    token.Digest(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.validity),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not save password reset token.",
			logging.Entry("accountId", a.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued.",
		logging.Entry("accountId", a.ID),
		logging.Entry("resetTokenId", resetToken.ID),
		logging.Entry("expiresAt", resetToken.ExpiresAt),
	)
	result.Issued = c.NewOptional(passwordreset.Notification{
		AccountID: a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Token:     token,
		ExpiresAt: resetToken.ExpiresAt,
	}, true)
	return result, nil
}
