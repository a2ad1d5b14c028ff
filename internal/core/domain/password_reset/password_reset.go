package passwordreset

import (
	"crypto/sha256"
	"encoding/hex"
	"proposalai/internal/core/domain/account"
	"time"
)

// Validity is the lifetime of a freshly issued reset token.
const Validity = time.Hour

type ID int64

// Token is the secret handed to the account owner. Only its digest is stored.
type Token string

func (t Token) String() string {
	return "***"
}

func (t Token) Digest() Digest {
	sum := sha256.Sum256([]byte(t))
	return Digest(hex.EncodeToString(sum[:]))
}

type Digest string

type ResetToken struct {
	ID         ID
	AccountID  account.ID
	Digest     Digest
	CreatedAt  time.Time
	ExpiresAt  time.Time
	IsConsumed bool
}

// IsLive reports whether the token may still authorize a password change.
// A token expiring exactly at now is still live.
func (t *ResetToken) IsLive(now time.Time) bool {
	return !t.IsConsumed && !now.After(t.ExpiresAt)
}
