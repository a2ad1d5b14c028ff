package consumers

import (
	"context"
	"proposalai/internal/app/deps"
	dl "proposalai/internal/core/domain/logging"
	passwordresetemail "proposalai/internal/rabbitmq/consumers/password_reset_email"
)

func initPasswordResetEmailConsumer(deps *deps.Deps) func() {
	rabbitmqChannel := deps.OpenPasswordResetQueue()

	queue := deps.Config.RabbitmqPasswordResetQueue
	consumer := passwordresetemail.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.EmailSender,
		deps.Config.NotificationTimeout,
		deps.Now,
	)
	if err := consumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownPasswordResetEmailConsumer := initPasswordResetEmailConsumer(deps)

	return func() {
		shutdownPasswordResetEmailConsumer()
	}
}
