package auth

import (
	"context"
	"errors"
	"proposalai/internal/core/domain/account"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

func WithSessionToken(ctx context.Context, token account.SessionToken) context.Context {
	return context.WithValue(ctx, CONTEXT_AUTH_TOKEN_KEY, token)
}

type Input interface {
	WithAuthenticatedAccount(a account.Account) Input
}

type service[T Input, S any] struct {
	sessionTokenParser account.SessionTokenParser
	accountRepository  account.Repository
	inner              services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	sessionTokenParser account.SessionTokenParser,
	accountRepository account.Repository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if sessionTokenParser == nil {
		panic(e.NewNilArgumentError("sessionTokenParser"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		sessionTokenParser: sessionTokenParser,
		accountRepository:  accountRepository,
		inner:              inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(account.SessionToken)
	if !ok {
		return result, account.ErrInvalidSessionToken
	}
	id, err := s.sessionTokenParser.ParseToken(authToken)
	if err != nil {
		return result, err
	}
	a, err := s.accountRepository.GetByID(ctx, id)
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		return result, account.ErrInvalidSessionToken
	}
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedAccount(a).(T))
}
