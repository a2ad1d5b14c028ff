package signupwithemail

import (
	"context"
	"errors"
	"proposalai/internal/core/domain/account"
	"proposalai/internal/core/domain/logging"
	uow "proposalai/internal/core/domain/unit_of_work"
	"proposalai/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = account.Email("test@test.test")
	NAME         = "Test"
	RAW_PASSWORD = account.RawPassword("test-password")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UnitOfWork     *uow.FakeUnitOfWork
	PasswordHasher *account.FakePasswordHasher
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.PasswordHasher = account.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)
}

func TestSignUpWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	result, err := suite.Service.Run(ctx, Input{Email: EMAIL, Name: NAME, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(account.ID(0), result.Account.ID)
	assert.Equal(NOW, result.Account.CreatedAt)
	assert.Equal(EMAIL, result.Account.Email)
	assert.Equal(NAME, result.Account.Name)
	assert.Equal(account.RoleUser, result.Account.Role)
	assert.False(result.Account.IsVerified)
	assert.NotEqual(account.PasswordHash(RAW_PASSWORD), result.Account.PasswordHash)
	assert.True(suite.PasswordHasher.ValidatePassword(RAW_PASSWORD, result.Account.PasswordHash))
	assert.True(suite.UnitOfWork.Last().WasCommitCalled)
	assert.Len(suite.UnitOfWork.AccountRepository.Accounts, 1)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	ctx := context.Background()
	suite.UnitOfWork.AccountRepository.Create(
		ctx,
		account.CreateInput{
			Email:        EMAIL,
			PasswordHash: account.PasswordHash("test"),
			Role:         account.RoleUser,
			CreatedAt:    NOW,
		},
	)

	_, err := suite.Service.Run(ctx, Input{Email: EMAIL, Name: NAME, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.True(errors.Is(err, account.ErrEmailAlreadyExists))
	assert.False(suite.UnitOfWork.Last().WasCommitCalled)
	assert.True(suite.UnitOfWork.Last().WasRollbackCalled)
	assert.Equal(0, suite.Logger.CountByLevel(logging.ERROR))
}

func (suite *testSuite) TestCommitFailureDiscardsAccount() {
	suite.UnitOfWork.CommitError = errors.New("connection reset")

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Name: NAME, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.Len(suite.UnitOfWork.AccountRepository.Accounts, 0)
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}
