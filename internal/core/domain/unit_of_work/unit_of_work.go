package uow

import (
	"context"
	"proposalai/internal/core/domain/account"
	passwordreset "proposalai/internal/core/domain/password_reset"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Accounts() account.Repository
	ResetTokens() passwordreset.Repository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
