package account

import (
	"context"
	"errors"
	"proposalai/internal/core/domain/account"
	"proposalai/internal/db/sqlcgen"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "account_email_idx"

type PgxAccountRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxRepository(db sqlcgen.DBTX) *PgxAccountRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxAccountRepository{queries: sqlcgen.New(db)}
}

func (r *PgxAccountRepository) Create(ctx context.Context, input account.CreateInput) (a account.Account, err error) {
	dbaccount, err := r.queries.CreateAccount(ctx, sqlcgen.CreateAccountParams{
		Email:        string(input.Email),
		Name:         input.Name,
		PasswordHash: string(input.PasswordHash),
		Role:         string(input.Role),
		IsVerified:   input.IsVerified,
		CreatedAt:    input.CreatedAt,
	})

	var errEmailUniqueConstraint *pgconn.PgError
	if errors.As(err, &errEmailUniqueConstraint) {
		if errEmailUniqueConstraint.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE &&
			errEmailUniqueConstraint.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return a, account.ErrEmailAlreadyExists
		}
	}

	if err != nil {
		return a, err
	}
	return decodeAndValidate(dbaccount)
}

func (r *PgxAccountRepository) GetByID(ctx context.Context, id account.ID) (a account.Account, err error) {
	dbaccount, err := r.queries.GetAccountByID(ctx, int64(id))
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	if err != nil {
		return a, err
	}
	return decodeAndValidate(dbaccount)
}

func (r *PgxAccountRepository) GetByEmail(ctx context.Context, email account.Email) (a account.Account, err error) {
	dbaccount, err := r.queries.GetAccountByEmail(ctx, string(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	if err != nil {
		return a, err
	}
	return decodeAndValidate(dbaccount)
}

func (r *PgxAccountRepository) SetPassword(ctx context.Context, id account.ID, hash account.PasswordHash) error {
	updated, err := r.queries.SetAccountPassword(ctx, sqlcgen.SetAccountPasswordParams{
		ID:           int64(id),
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}
	if updated == 0 {
		return account.ErrAccountDoesNotExist
	}
	return nil
}

func decodeAndValidate(dbaccount sqlcgen.Account) (a account.Account, err error) {
	a = decodeAccount(dbaccount)
	err = a.Validate()
	if err != nil {
		return a, err
	}
	return a, nil
}

func decodeAccount(a sqlcgen.Account) account.Account {
	return account.Account{
		ID:           account.ID(a.ID),
		Email:        account.Email(a.Email),
		Name:         a.Name,
		PasswordHash: account.PasswordHash(a.PasswordHash),
		Role:         account.Role(a.Role),
		IsVerified:   a.IsVerified,
		CreatedAt:    a.CreatedAt.UTC(),
	}
}
