package loginwithemail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"proposalai/internal/core/domain/account"
	ratelimiter "proposalai/internal/core/domain/rate_limiter"
	"proposalai/internal/core/services"
	loginwithemail "proposalai/internal/core/services/log_in_with_email"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{"email": "john@example.com", "password": "secret-password"}`

func newHandler(err error) *Handler {
	return New(services.ServiceFunc[loginwithemail.Input, loginwithemail.Result](
		func(ctx context.Context, input loginwithemail.Input) (result loginwithemail.Result, e error) {
			if err != nil {
				return result, err
			}
			result.Token = account.SessionToken("session-token")
			result.Account = account.Account{ID: account.ID(1), Email: input.Email, Role: account.RoleUser}
			return result, nil
		},
	))
}

func TestLogInWithEmailHandler(t *testing.T) {
	cases := []struct {
		name           string
		body           string
		err            error
		expectedStatus int
	}{
		{name: "success", body: validBody, expectedStatus: http.StatusOK},
		{name: "malformed json", body: `[]`, expectedStatus: http.StatusBadRequest},
		{name: "missing password", body: `{"email": "john@example.com"}`, expectedStatus: http.StatusBadRequest},
		{name: "invalid credentials", body: validBody, err: account.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized},
		{name: "rate limited", body: validBody, err: ratelimiter.ErrRateLimitExceeded, expectedStatus: http.StatusTooManyRequests},
		{name: "unexpected error", body: validBody, err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}
	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			handler := newHandler(testcase.err)
			r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(testcase.body))
			rw := httptest.NewRecorder()

			handler.ServeHTTP(rw, r)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
		})
	}
}

func TestLogInWithEmailHandlerRendersToken(t *testing.T) {
	assert := require.New(t)
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(validBody))
	rw := httptest.NewRecorder()

	newHandler(nil).ServeHTTP(rw, r)

	result := Result{}
	assert.Nil(json.Unmarshal(rw.Body.Bytes(), &result))
	assert.Equal("session-token", result.Token)
	assert.Equal("john@example.com", result.Account.Email)
}
