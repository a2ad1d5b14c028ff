package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalRejectsIncompleteMessage(t *testing.T) {
	m := &PasswordResetEmail{}

	require.NotNil(t, m.Unmarshal([]byte(`{"accountId": 1, "email": "a@b.c"}`)))
	require.NotNil(t, m.Unmarshal([]byte(`not json`)))
	require.Nil(t, m.Unmarshal([]byte(`{"accountId": 1, "email": "a@b.c", "token": "t"}`)))
	require.Equal(t, int64(1), m.AccountID)
}
