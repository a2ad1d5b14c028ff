package logging

import (
	"context"
	"errors"
	"proposalai/internal/core/domain/logging"
	"testing"

	"github.com/stretchr/testify/require"
)

type secret string

func (s secret) String() string {
	return "***"
}

func TestPrepareArgs(t *testing.T) {
	args := prepareArgs(logging.Entry("accountId", 1), logging.Entry("err", "boom"))

	require.Equal(t, []interface{}{"accountId", 1, "err", "boom"}, args)
}

func TestExtrasUseStringers(t *testing.T) {
	m := extras(logging.Entry("token", secret("raw-token")), logging.Entry("err", errors.New("boom")))

	require.Equal(t, map[string]interface{}{"token": "***", "err": "boom"}, m)
}

func TestErrorWithoutSentryClient(t *testing.T) {
	l := NewZapLogger(true)
	defer l.Sync()

	l.Error(context.Background(), "Something failed.", logging.Entry("err", errors.New("boom")))
}
