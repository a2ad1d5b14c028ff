package resettokengenerator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	passwordreset "proposalai/internal/core/domain/password_reset"
)

const tokenBytes = 32

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateToken() (passwordreset.Token, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return passwordreset.Token(""), fmt.Errorf("could not read random bytes: %w", err)
	}
	return passwordreset.Token(hex.EncodeToString(b)), nil
}
