package passwordreset

import (
	"context"
	"proposalai/internal/core/domain/account"
	"time"
)

type TokenGenerator interface {
	GenerateToken() (Token, error)
}

type Notification struct {
	AccountID account.ID
	Email     account.Email
	Name      string
	Token     Token
	ExpiresAt time.Time
}

type Sender interface {
	SendPasswordResetToken(ctx context.Context, n Notification) error
}
