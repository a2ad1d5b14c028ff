package getcurrentaccount

import (
	"context"
	"proposalai/internal/core/domain/account"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/domain/logging"
	"proposalai/internal/core/services"
	"proposalai/internal/core/services/auth"
)

type Input struct {
	Account account.Account
}

func (i Input) WithAuthenticatedAccount(a account.Account) auth.Input {
	i.Account = a
	return i
}

type Result struct {
	Account account.Account
}

type service struct {
	log logging.Logger
}

func New(log logging.Logger) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &service{log: log}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Account.Validate(); err != nil {
		s.log.Error(
			ctx,
			"Authenticated account is in invalid state.",
			logging.Entry("accountId", input.Account.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	return Result{Account: input.Account}, nil
}
