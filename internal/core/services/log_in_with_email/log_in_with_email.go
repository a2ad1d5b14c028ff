package loginwithemail

import (
	"context"
	"errors"
	"proposalai/internal/core/domain/account"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/domain/logging"
	"proposalai/internal/core/services"
)

type Input struct {
	Email    account.Email
	Password account.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "log-in-with-email::" + string(i.Email)
}

type Result struct {
	Token   account.SessionToken
	Account account.Account
}

type service struct {
	log                logging.Logger
	accountRepository  account.Repository
	passwordHasher     account.PasswordHasher
	sessionTokenIssuer account.SessionTokenIssuer
}

func New(
	log logging.Logger,
	accountRepository account.Repository,
	passwordHasher account.PasswordHasher,
	sessionTokenIssuer account.SessionTokenIssuer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionTokenIssuer == nil {
		panic(e.NewNilArgumentError("sessionTokenIssuer"))
	}
	return &service{
		log:                log,
		accountRepository:  accountRepository,
		passwordHasher:     passwordHasher,
		sessionTokenIssuer: sessionTokenIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	a, err := s.accountRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, account.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get account by email.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !s.passwordHasher.ValidatePassword(input.Password, a.PasswordHash) {
		s.log.Info(ctx, "Invalid password provided.", logging.Entry("accountId", a.ID))
		return result, account.ErrInvalidCredentials
	}

	sessionToken, err := s.sessionTokenIssuer.IssueToken(a)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue session token for account.",
			logging.Entry("accountId", a.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Account successfully authenticated, session token issued.",
		logging.Entry("accountId", a.ID),
	)
	return Result{Token: sessionToken, Account: a}, nil
}
