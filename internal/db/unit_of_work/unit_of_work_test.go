package uow

import (
	"context"
	"errors"
	"fmt"
	"proposalai/internal/core/domain/account"
	"proposalai/internal/core/domain/logging"
	passwordreset "proposalai/internal/core/domain/password_reset"
	resetpassword "proposalai/internal/core/services/reset_password"
	"proposalai/internal/db"
	dbaccount "proposalai/internal/db/account"
	dbpasswordreset "proposalai/internal/db/password_reset"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const TOKEN = passwordreset.Token("test-token")

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.uow = NewPgxUnitOfWork(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	db.SkipWithoutDatabase(t)
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestRollbackDiscardsWrites() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)

	_, err = uow.Accounts().Create(ctx, account.CreateInput{
		Email:        account.Email("test@test.test"),
		PasswordHash: account.PasswordHash("hash"),
		Role:         account.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	s.Require().Nil(err)
	s.Require().Nil(uow.Rollback(ctx))

	_, err = dbaccount.NewPgxRepository(s.pool).GetByEmail(ctx, account.Email("test@test.test"))
	s.Require().ErrorIs(err, account.ErrAccountDoesNotExist)
}

func (s *testSuite) TestConcurrentResetHasSingleWinner() {
	accountID := s.createAccountAndToken()
	hasher := account.NewFakePasswordHasher()
	service := resetpassword.New(
		logging.NewFakeLogger(),
		s.uow,
		dbpasswordreset.NewPgxRepository(s.pool),
		hasher,
		func() time.Time { return time.Now().UTC() },
	)

	const consumers = 10
	errs := make([]error, consumers)
	var wg sync.WaitGroup
	wg.Add(consumers)
	for i := 0; i < consumers; i++ {
		i := i
		go func() {
			defer wg.Done()
			_, errs[i] = service.Run(context.Background(), resetpassword.Input{
				Token:       TOKEN,
				NewPassword: account.RawPassword(fmt.Sprintf("password-%d", i)),
			})
		}()
	}
	wg.Wait()

	winner := -1
	for i, err := range errs {
		if err == nil {
			s.Require().Equal(-1, winner, "more than one consumer succeeded")
			winner = i
			continue
		}
		s.Require().True(errors.Is(err, passwordreset.ErrExpiredOrUsedToken), "unexpected error: %v", err)
	}
	s.Require().NotEqual(-1, winner)

	a, err := dbaccount.NewPgxRepository(s.pool).GetByID(context.Background(), accountID)
	s.Require().Nil(err)
	s.Require().True(hasher.ValidatePassword(account.RawPassword(fmt.Sprintf("password-%d", winner)), a.PasswordHash))
}

func (s *testSuite) createAccountAndToken() account.ID {
	s.T().Helper()

	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		s.FailNowf("could not begin uow", "%v", err)
	}
	defer uow.Rollback(ctx)

	now := time.Now().UTC()
	a, err := uow.Accounts().Create(ctx, account.CreateInput{
		Email:        account.Email("test@test.test"),
		PasswordHash: account.PasswordHash("hash"),
		Role:         account.RoleUser,
		CreatedAt:    now,
	})
	if err != nil {
		s.FailNowf("could not create account", "%v", err)
	}
	_, err = uow.ResetTokens().Create(ctx, passwordreset.CreateInput{
		AccountID: a.ID,
		Digest:    TOKEN.Digest(),
		CreatedAt: now,
		ExpiresAt: now.Add(passwordreset.Validity),
	})
	if err != nil {
		s.FailNowf("could not create reset token", "%v", err)
	}

	if err := uow.Commit(ctx); err != nil {
		s.FailNowf("could not commit uow", "%v", err)
	}
	return a.ID
}
