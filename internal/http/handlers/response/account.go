package response

import (
	"proposalai/internal/core/domain/account"
	"time"
)

type Account struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Account) FromDomainAccount(da account.Account) {
	a.ID = int64(da.ID)
	a.Email = string(da.Email)
	a.Name = da.Name
	a.Role = string(da.Role)
	a.IsVerified = da.IsVerified
	a.CreatedAt = da.CreatedAt
}
