package account

import (
	e "proposalai/internal/core/domain/errors"
	"strings"
	"time"
)

type ID int64

type Email string

func NewEmail(rawEmail string) Email {
	return Email(strings.ToLower(strings.TrimSpace(rawEmail)))
}

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type Role string

const (
	RoleUser  = Role("user")
	RoleAdmin = Role("admin")
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

type Account struct {
	ID           ID
	Email        Email
	Name         string
	PasswordHash PasswordHash
	Role         Role
	IsVerified   bool
	CreatedAt    time.Time
}

func (a *Account) Validate() error {
	if a.Email == "" {
		return e.NewInvalidStateErrorf("email is not set for account %d", a.ID)
	}
	if a.PasswordHash == "" {
		return e.NewInvalidStateErrorf("password hash is not set for account %d", a.ID)
	}
	if !a.Role.IsValid() {
		return e.NewInvalidStateErrorf("invalid role %q of account %d", a.Role, a.ID)
	}
	return nil
}
