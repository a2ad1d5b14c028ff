package passwordresetemail

import (
	"context"
	"proposalai/internal/core/domain/account"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/domain/logging"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"proposalai/internal/rabbitmq"
	"proposalai/internal/rabbitmq/schema"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	sender  passwordreset.Sender
	timeout time.Duration
	now     func() time.Time
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	sender passwordreset.Sender,
	timeout time.Duration,
	now func() time.Time,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if timeout <= 0 {
		panic("delivery timeout must be positive")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Consumer{log: log, channel: channel, queue: queue, sender: sender, timeout: timeout, now: now}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start cosuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.Handle(context.Background(), delivery.MessageId, delivery.Body)
			c.Ack(delivery)
		}
	}()
	return nil
}

// Handle delivers one queued email. Every outcome is final: the message is
// acknowledged whether delivery succeeded or not.
func (c *Consumer) Handle(ctx context.Context, messageID string, body []byte) {
	message := &schema.PasswordResetEmail{}
	if err := message.Unmarshal(body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal password reset email.",
			logging.Entry("messageId", messageID),
			logging.Entry("err", err),
		)
		return
	}
	if c.now().After(message.ExpiresAt) {
		c.log.Warning(
			ctx,
			"Password reset token has expired before delivery, dropping the email.",
			logging.Entry("messageId", messageID),
			logging.Entry("accountId", message.AccountID),
		)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	err := c.sender.SendPasswordResetToken(sendCtx, passwordreset.Notification{
		AccountID: account.ID(message.AccountID),
		Email:     account.Email(message.Email),
		Name:      message.Name,
		Token:     passwordreset.Token(message.Token),
		ExpiresAt: message.ExpiresAt,
	})
	if err != nil {
		c.log.Error(
			ctx,
			"Could not deliver password reset email.",
			logging.Entry("messageId", messageID),
			logging.Entry("accountId", message.AccountID),
			logging.Entry("err", &passwordreset.TransportError{Err: err}),
		)
		return
	}
	c.log.Info(
		ctx,
		"Password reset email has been delivered.",
		logging.Entry("messageId", messageID),
		logging.Entry("accountId", message.AccountID),
	)
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
