package resettokengenerator

import (
	"encoding/hex"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"testing"
)

func TestResetTokenGenerator(t *testing.T) {
	generator := NewGenerator()
	tokens := make(map[passwordreset.Token]struct{})
	for i := 0; i < 100; i++ {
		token, err := generator.GenerateToken()
		if err != nil {
			t.Fatalf("could not generate token: %v", err)
		}
		if len(token) != 2*tokenBytes {
			t.Fatalf("unexpected token length: %d", len(token))
		}
		if _, err := hex.DecodeString(string(token)); err != nil {
			t.Fatalf("token is not hex encoded: %v", err)
		}
		if _, ok := tokens[token]; ok {
			t.Fatalf("token %d already exists", i)
		}
		tokens[token] = struct{}{}
	}
}
