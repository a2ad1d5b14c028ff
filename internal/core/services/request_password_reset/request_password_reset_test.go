package requestpasswordreset

import (
	"context"
	"proposalai/internal/core/domain/account"
	"proposalai/internal/core/domain/logging"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"proposalai/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = account.Email("demo@proposalai.com")
	TOKEN_PREFIX = "test-reset-token"
)

var NOW = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	Accounts       *account.FakeRepository
	ResetTokens    *passwordreset.FakeRepository
	TokenGenerator *passwordreset.FakeTokenGenerator
	Sender         *passwordreset.FakeSender
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Accounts = account.NewFakeRepository()
	suite.ResetTokens = passwordreset.NewFakeRepository()
	suite.TokenGenerator = passwordreset.NewFakeTokenGenerator(TOKEN_PREFIX)
	suite.Sender = passwordreset.NewFakeSender()
	suite.Service = NewWithNotification(
		suite.Logger,
		suite.Sender,
		time.Second,
		New(
			suite.Logger,
			suite.Accounts,
			suite.ResetTokens,
			suite.TokenGenerator,
			passwordreset.Validity,
			func() time.Time { return NOW },
		),
	)

	_, err := suite.Accounts.Create(context.Background(), account.CreateInput{
		Email:        EMAIL,
		Name:         "Demo",
		PasswordHash: account.PasswordHash("hash"),
		Role:         account.RoleUser,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
}

func TestRequestPasswordResetService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestUnknownEmailGetsTheSameAcknowledgment() {
	result, err := suite.Service.Run(context.Background(), Input{Email: account.Email("new@x.com")})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(Result{}, result)
	assert.Equal(0, suite.ResetTokens.Count())
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSuite) TestTokenIssuedAndSentForExistingAccount() {
	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(Result{}, result)

	assert.Equal(1, suite.ResetTokens.Count())
	stored := suite.ResetTokens.Tokens[0]
	assert.Equal(account.ID(1), stored.AccountID)
	assert.Equal(NOW, stored.CreatedAt)
	assert.Equal(NOW.Add(3600*time.Second), stored.ExpiresAt)
	assert.False(stored.IsConsumed)

	assert.Equal(1, suite.Sender.SentCount())
	sent := suite.Sender.LastSent()
	assert.Equal(EMAIL, sent.Email)
	assert.Equal("Demo", sent.Name)
	assert.Equal(stored.ExpiresAt, sent.ExpiresAt)
	assert.Equal(sent.Token.Digest(), stored.Digest)
	assert.NotEqual(passwordreset.Digest(sent.Token), stored.Digest)
}

func (suite *testSuite) TestEveryRequestMintsANewToken() {
	for i := 0; i < 3; i++ {
		_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})
		suite.Require().Nil(err)
	}

	assert := suite.Require()
	assert.Equal(3, suite.ResetTokens.Count())
	assert.Equal(3, suite.Sender.SentCount())
	digests := make(map[passwordreset.Digest]struct{})
	for _, t := range suite.ResetTokens.Tokens {
		assert.True(t.IsLive(NOW))
		digests[t.Digest] = struct{}{}
	}
	assert.Len(digests, 3)
}

func (suite *testSuite) TestDeliveryFailureIsSwallowed() {
	suite.Sender.ReturnError = true

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(Result{}, result)
	assert.Equal(1, suite.ResetTokens.Count())
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}

func (suite *testSuite) TestSlowDeliveryDoesNotBlockAcknowledgment() {
	suite.Sender.Block = true
	service := NewWithNotification(
		suite.Logger,
		suite.Sender,
		50*time.Millisecond,
		New(
			suite.Logger,
			suite.Accounts,
			suite.ResetTokens,
			suite.TokenGenerator,
			passwordreset.Validity,
			func() time.Time { return NOW },
		),
	)

	started := time.Now()
	result, err := service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(Result{}, result)
	assert.Less(time.Since(started), 5*time.Second)
	assert.Equal(1, suite.ResetTokens.Count())
}

func (suite *testSuite) TestCanceledRequestStillDelivers() {
	ctx, cancel := context.WithCancel(context.Background())
	service := NewWithNotification(
		suite.Logger,
		suite.Sender,
		time.Second,
		services.ServiceFunc[Input, Result](func(ctx context.Context, input Input) (Result, error) {
			result, err := New(
				suite.Logger,
				suite.Accounts,
				suite.ResetTokens,
				suite.TokenGenerator,
				passwordreset.Validity,
				func() time.Time { return NOW },
			).Run(ctx, input)
			cancel()
			return result, err
		}),
	)

	_, err := service.Run(ctx, Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(1, suite.Sender.SentCount())
}

func (suite *testSuite) TestStorageFailureIsReturned() {
	suite.ResetTokens.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.NotNil(err)
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSuite) TestAccountLookupFailureIsReturned() {
	suite.Accounts.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.NotNil(err)
	assert.Equal(0, suite.ResetTokens.Count())
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSuite) TestTokenGenerationFailureIsReturned() {
	suite.TokenGenerator.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.NotNil(err)
	assert.Equal(0, suite.ResetTokens.Count())
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSuite) TestRateLimitKeyDependsOnEmail() {
	assert := suite.Require()
	assert.Equal("request-password-reset::demo@proposalai.com", Input{Email: EMAIL}.GetRateLimitKey())
	assert.NotEqual(Input{Email: EMAIL}.GetRateLimitKey(), Input{Email: "new@x.com"}.GetRateLimitKey())
}
