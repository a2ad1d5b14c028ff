package auth

import (
	"context"
	"proposalai/internal/core/domain/account"
	"proposalai/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type input struct {
	Account account.Account
}

func (i input) WithAuthenticatedAccount(a account.Account) Input {
	i.Account = a
	return i
}

type result struct {
	Account account.Account
}

type testSuite struct {
	suite.Suite
	AccountRepository *account.FakeRepository
	SessionTokens     *account.FakeSessionTokens
	InnerCalls        int
	Service           services.Service[input, result]
	Account           account.Account
}

func (suite *testSuite) SetupTest() {
	suite.AccountRepository = account.NewFakeRepository()
	suite.SessionTokens = account.NewFakeSessionTokens()
	suite.InnerCalls = 0
	suite.Service = WithAuthentication[input, result](
		suite.SessionTokens,
		suite.AccountRepository,
		services.ServiceFunc[input, result](func(ctx context.Context, in input) (result, error) {
			suite.InnerCalls++
			return result{Account: in.Account}, nil
		}),
	)
	a, err := suite.AccountRepository.Create(context.Background(), account.CreateInput{
		Email:        account.Email("test@test.test"),
		PasswordHash: account.PasswordHash("hash"),
		Role:         account.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	suite.Require().Nil(err)
	suite.Account = a
}

func TestAuthentication(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestAuthenticated() {
	token, _ := suite.SessionTokens.IssueToken(suite.Account)
	ctx := WithSessionToken(context.Background(), token)

	res, err := suite.Service.Run(ctx, input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(suite.Account, res.Account)
	assert.Equal(1, suite.InnerCalls)
}

func (suite *testSuite) TestMissingToken() {
	_, err := suite.Service.Run(context.Background(), input{})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrInvalidSessionToken)
	assert.Equal(0, suite.InnerCalls)
}

func (suite *testSuite) TestMalformedToken() {
	ctx := WithSessionToken(context.Background(), account.SessionToken("garbage"))

	_, err := suite.Service.Run(ctx, input{})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrInvalidSessionToken)
	assert.Equal(0, suite.InnerCalls)
}

func (suite *testSuite) TestUnknownAccount() {
	ctx := WithSessionToken(context.Background(), account.SessionToken("session-42"))

	_, err := suite.Service.Run(ctx, input{})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrInvalidSessionToken)
	assert.Equal(0, suite.InnerCalls)
}
