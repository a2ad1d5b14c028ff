package main

import (
	"context"
	"os"
	"os/signal"
	"proposalai/internal/app/consumers"
	"proposalai/internal/app/deps"
	"proposalai/internal/core/domain/logging"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitMailerDeps()
	defer shutdownDeps()

	shutdownConsumers := consumers.InitConsumers(deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	deps.Logger.Info(context.Background(), "Stopping password reset mailer.")
	shutdownConsumers()
	deps.Logger.Info(context.Background(), "Password reset mailer has stopped.", logging.Entry("queue", deps.Config.RabbitmqPasswordResetQueue))
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
