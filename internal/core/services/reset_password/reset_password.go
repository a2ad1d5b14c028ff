package resetpassword

import (
	"context"
	"errors"
	"proposalai/internal/core/domain/account"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/domain/logging"
	passwordreset "proposalai/internal/core/domain/password_reset"
	uow "proposalai/internal/core/domain/unit_of_work"
	"proposalai/internal/core/services"
	"time"
)

type Input struct {
	Token       passwordreset.Token
	NewPassword account.RawPassword
}

type Result struct{}

type service struct {
	log                  logging.Logger
	unitOfWork           uow.UnitOfWork
	resetTokenRepository passwordreset.Repository
	passwordHasher       account.PasswordHasher
	now                  func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	resetTokenRepository passwordreset.Repository,
	passwordHasher account.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if resetTokenRepository == nil {
		panic(e.NewNilArgumentError("resetTokenRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                  log,
		unitOfWork:           unitOfWork,
		resetTokenRepository: resetTokenRepository,
		passwordHasher:       passwordHasher,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	digest := input.Token.Digest()

	// Cheap rejection before hashing; the decision is repeated under the row lock.
	t, err := s.resetTokenRepository.GetByDigest(ctx, digest)
	if err != nil {
		return result, s.handleLookupError(ctx, err)
	}
	if !t.IsLive(s.now()) {
		s.log.Info(ctx, "Password reset token has expired or been used.", logging.Entry("resetTokenId", t.ID))
		return result, passwordreset.ErrExpiredOrUsedToken
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	t, err = uow.ResetTokens().GetByDigestForUpdate(ctx, digest)
	if err != nil {
		return result, s.handleLookupError(ctx, err)
	}
	now := s.now()
	if !t.IsLive(now) {
		s.log.Info(
			ctx,
			"Password reset token has been consumed concurrently or expired.",
			logging.Entry("resetTokenId", t.ID),
		)
		return result, passwordreset.ErrExpiredOrUsedToken
	}

	err = uow.Accounts().SetPassword(ctx, t.AccountID, newPasswordHash)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update account password.",
			logging.Entry("accountId", t.AccountID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = uow.ResetTokens().MarkConsumed(ctx, t.ID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not mark password reset token as consumed.",
			logging.Entry("resetTokenId", t.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	invalidated, err := uow.ResetTokens().ConsumeOutstanding(ctx, t.AccountID, now)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not invalidate outstanding password reset tokens.",
			logging.Entry("accountId", t.AccountID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = uow.Commit(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("accountId", t.AccountID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("accountId", t.AccountID),
		logging.Entry("resetTokenId", t.ID),
		logging.Entry("invalidatedTokens", invalidated),
	)
	return result, nil
}

func (s *service) handleLookupError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
	case errors.Is(err, passwordreset.ErrInvalidToken):
		s.log.Info(ctx, "Unknown password reset token.")
	default:
		s.log.Error(ctx, "Could not get password reset token.", logging.Entry("err", err))
	}
	return err
}
