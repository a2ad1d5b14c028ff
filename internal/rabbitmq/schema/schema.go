package schema

import (
	"encoding/json"
	"errors"
	"time"
)

// PasswordResetEmail is the body of a queued password reset email. It carries
// the raw token, so the queue must be treated as sensitive.
type PasswordResetEmail struct {
	AccountID int64     `json:"accountId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (m *PasswordResetEmail) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *PasswordResetEmail) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	if m.Email == "" || m.Token == "" {
		return errors.New("password reset email must have email and token")
	}
	return nil
}
