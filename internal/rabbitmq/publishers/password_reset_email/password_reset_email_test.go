package passwordresetemail

import (
	"context"
	"errors"
	"proposalai/internal/core/domain/account"
	"proposalai/internal/core/domain/logging"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"proposalai/internal/rabbitmq/schema"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeChannel struct {
	published []amqp091.Publishing
	keys      []string
	err       error
}

func (c *fakeChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp091.Publishing,
) error {
	if c.err != nil {
		return c.err
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func TestPublish(t *testing.T) {
	ch := &fakeChannel{}
	publisher := New(logging.NewFakeLogger(), ch, "", "password-reset-emails", func() time.Time { return NOW })

	err := publisher.SendPasswordResetToken(context.Background(), passwordreset.Notification{
		AccountID: 7,
		Email:     account.Email("demo@proposalai.com"),
		Name:      "Demo",
		Token:     passwordreset.Token("abc"),
		ExpiresAt: NOW.Add(time.Hour),
	})

	require.Nil(t, err)
	require.Len(t, ch.published, 1)
	require.Equal(t, []string{"password-reset-emails"}, ch.keys)
	msg := ch.published[0]
	require.NotEmpty(t, msg.MessageId)
	require.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	require.Equal(t, "3600000", msg.Expiration)

	body := &schema.PasswordResetEmail{}
	require.Nil(t, body.Unmarshal(msg.Body))
	require.Equal(t, int64(7), body.AccountID)
	require.Equal(t, "demo@proposalai.com", body.Email)
	require.Equal(t, "abc", body.Token)
	require.True(t, NOW.Add(time.Hour).Equal(body.ExpiresAt))
}

func TestPublishFailure(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	publisher := New(logging.NewFakeLogger(), ch, "", "password-reset-emails", func() time.Time { return NOW })

	err := publisher.SendPasswordResetToken(context.Background(), passwordreset.Notification{
		Email:     account.Email("demo@proposalai.com"),
		Token:     passwordreset.Token("abc"),
		ExpiresAt: NOW.Add(time.Hour),
	})

	require.NotNil(t, err)
}

func TestExpirationOfExpiredToken(t *testing.T) {
	require.Equal(t, "1", expiration(NOW.Add(-time.Minute), NOW))
}
