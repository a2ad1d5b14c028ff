package requestpasswordreset

import (
	"context"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/domain/logging"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"proposalai/internal/core/services"
	"time"
)

type serviceWithNotification struct {
	log     logging.Logger
	sender  passwordreset.Sender
	timeout time.Duration
	inner   services.Service[Input, Result]
}

// NewWithNotification delivers the token issued by inner and returns an empty
// Result whether an account matched or not. Delivery is bounded by timeout and
// its failures are logged, never returned.
func NewWithNotification(
	log logging.Logger,
	sender passwordreset.Sender,
	timeout time.Duration,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	if timeout <= 0 {
		panic("notification timeout must be positive")
	}
	return &serviceWithNotification{
		log:     log,
		sender:  sender,
		timeout: timeout,
		inner:   inner,
	}
}

func (s *serviceWithNotification) Run(ctx context.Context, input Input) (Result, error) {
	result, err := s.inner.Run(ctx, input)
	if err != nil {
		return Result{}, err
	}
	if !result.Issued.IsPresent {
		return Result{}, nil
	}

	notification := result.Issued.Value
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.sender.SendPasswordResetToken(sendCtx, notification); err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("accountId", notification.AccountID),
			logging.Entry("err", &passwordreset.TransportError{Err: err}),
		)
		return Result{}, nil
	}

	s.log.Info(
		ctx,
		"Password reset token has been sent.",
		logging.Entry("accountId", notification.AccountID),
	)
	return Result{}, nil
}
