package passwordreset

import (
	"context"
	"errors"
	"proposalai/internal/core/domain/account"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"proposalai/internal/db/sqlcgen"
	"time"

	"github.com/jackc/pgx/v4"
)

type PgxResetTokenRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxRepository(db sqlcgen.DBTX) *PgxResetTokenRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxResetTokenRepository{queries: sqlcgen.New(db)}
}

func (r *PgxResetTokenRepository) Create(
	ctx context.Context,
	input passwordreset.CreateInput,
) (t passwordreset.ResetToken, err error) {
	dbtoken, err := r.queries.CreatePasswordResetToken(ctx, sqlcgen.CreatePasswordResetTokenParams{
		AccountID: int64(input.AccountID),
		Digest:    string(input.Digest),
		CreatedAt: input.CreatedAt,
		ExpiresAt: input.ExpiresAt,
	})
	if err != nil {
		return t, err
	}
	return decodeResetToken(dbtoken), nil
}

func (r *PgxResetTokenRepository) GetByDigest(
	ctx context.Context,
	digest passwordreset.Digest,
) (t passwordreset.ResetToken, err error) {
	dbtoken, err := r.queries.GetPasswordResetTokenByDigest(ctx, string(digest))
	if errors.Is(err, pgx.ErrNoRows) {
		return t, passwordreset.ErrInvalidToken
	}
	if err != nil {
		return t, err
	}
	return decodeResetToken(dbtoken), nil
}

func (r *PgxResetTokenRepository) GetByDigestForUpdate(
	ctx context.Context,
	digest passwordreset.Digest,
) (t passwordreset.ResetToken, err error) {
	dbtoken, err := r.queries.GetPasswordResetTokenByDigestForUpdate(ctx, string(digest))
	if errors.Is(err, pgx.ErrNoRows) {
		return t, passwordreset.ErrInvalidToken
	}
	if err != nil {
		return t, err
	}
	return decodeResetToken(dbtoken), nil
}

func (r *PgxResetTokenRepository) MarkConsumed(ctx context.Context, id passwordreset.ID) error {
	updated, err := r.queries.MarkPasswordResetTokenConsumed(ctx, int64(id))
	if err != nil {
		return err
	}
	if updated == 0 {
		return passwordreset.ErrExpiredOrUsedToken
	}
	return nil
}

func (r *PgxResetTokenRepository) ConsumeOutstanding(
	ctx context.Context,
	accountID account.ID,
	at time.Time,
) (int64, error) {
	return r.queries.ConsumeOutstandingPasswordResetTokens(ctx, sqlcgen.ConsumeOutstandingPasswordResetTokensParams{
		At:        at,
		AccountID: int64(accountID),
	})
}

func decodeResetToken(t sqlcgen.PasswordResetToken) passwordreset.ResetToken {
	return passwordreset.ResetToken{
		ID:         passwordreset.ID(t.ID),
		AccountID:  account.ID(t.AccountID),
		Digest:     passwordreset.Digest(t.Digest),
		CreatedAt:  t.CreatedAt.UTC(),
		ExpiresAt:  t.ExpiresAt.UTC(),
		IsConsumed: t.ConsumedAt.Valid,
	}
}
