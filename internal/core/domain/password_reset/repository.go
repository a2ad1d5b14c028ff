package passwordreset

import (
	"context"
	"proposalai/internal/core/domain/account"
	"time"
)

type CreateInput struct {
	AccountID account.ID
	Digest    Digest
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (ResetToken, error)
	GetByDigest(ctx context.Context, digest Digest) (ResetToken, error)
	// GetByDigestForUpdate locks the token row until the surrounding
	// transaction ends.
	GetByDigestForUpdate(ctx context.Context, digest Digest) (ResetToken, error)
	MarkConsumed(ctx context.Context, id ID) error
	// ConsumeOutstanding marks every live token of the account as consumed
	// and returns how many were affected.
	ConsumeOutstanding(ctx context.Context, accountID account.ID, at time.Time) (int64, error)
}
