package account

import (
	"context"
	"time"
)

type CreateInput struct {
	Email        Email
	Name         string
	PasswordHash PasswordHash
	Role         Role
	IsVerified   bool
	CreatedAt    time.Time
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Account, error)
	GetByID(ctx context.Context, id ID) (Account, error)
	GetByEmail(ctx context.Context, email Email) (Account, error)
	SetPassword(ctx context.Context, id ID, hash PasswordHash) error
}
