package passwordresetemail

import (
	"context"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/domain/logging"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"proposalai/internal/rabbitmq/schema"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

type channel interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// Publisher queues password reset emails for cmd/mailer instead of calling
// SES inside the request.
type Publisher struct {
	log        logging.Logger
	channel    channel
	exchange   string
	routingKey string
	now        func() time.Time
}

func New(
	log logging.Logger,
	channel channel,
	exchange string,
	routingKey string,
	now func() time.Time,
) *Publisher {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if routingKey == "" {
		panic("routing key must not be empty")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Publisher{log: log, channel: channel, exchange: exchange, routingKey: routingKey, now: now}
}

func (p *Publisher) SendPasswordResetToken(ctx context.Context, n passwordreset.Notification) error {
	message := schema.PasswordResetEmail{
		AccountID: int64(n.AccountID),
		Email:     string(n.Email),
		Name:      n.Name,
		Token:     string(n.Token),
		ExpiresAt: n.ExpiresAt,
	}
	body, err := message.Marshal()
	if err != nil {
		return err
	}

	messageID := uuid.NewString()
	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    messageID,
		Timestamp:    p.now(),
		Expiration:   expiration(n.ExpiresAt, p.now()),
		Body:         body,
	})
	if err != nil {
		return err
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", p.routingKey),
		logging.Entry("messageId", messageID),
		logging.Entry("accountId", n.AccountID),
	)
	return nil
}

// expiration drops the message from the queue once the token it carries has
// expired.
func expiration(expiresAt time.Time, now time.Time) string {
	ttl := expiresAt.Sub(now).Milliseconds()
	if ttl < 1 {
		ttl = 1
	}
	return strconv.FormatInt(ttl, 10)
}
