package signupwithemail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"proposalai/internal/core/domain/account"
	"proposalai/internal/core/services"
	signupwithemail "proposalai/internal/core/services/sign_up_with_email"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(err error, captured *signupwithemail.Input) *Handler {
	return New(services.ServiceFunc[signupwithemail.Input, signupwithemail.Result](
		func(ctx context.Context, input signupwithemail.Input) (result signupwithemail.Result, e error) {
			if captured != nil {
				*captured = input
			}
			if err != nil {
				return result, err
			}
			result.Account = account.Account{
				ID:        account.ID(7),
				Email:     input.Email,
				Name:      input.Name,
				Role:      account.RoleUser,
				CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			}
			return result, nil
		},
	))
}

func TestSignUpWithEmailHandler(t *testing.T) {
	cases := []struct {
		name           string
		body           string
		err            error
		expectedStatus int
	}{
		{name: "success", body: `{"email": "John@Example.com", "name": "John", "password": "secret-password"}`, expectedStatus: http.StatusCreated},
		{name: "malformed json", body: `{"email"`, expectedStatus: http.StatusBadRequest},
		{name: "invalid email", body: `{"email": "john", "password": "secret-password"}`, expectedStatus: http.StatusBadRequest},
		{name: "short password", body: `{"email": "john@example.com", "password": "short"}`, expectedStatus: http.StatusBadRequest},
		{name: "long password", body: `{"email": "john@example.com", "password": "` + strings.Repeat("p", 257) + `"}`, expectedStatus: http.StatusBadRequest},
		{
			name:           "duplicate email",
			body:           `{"email": "john@example.com", "password": "secret-password"}`,
			err:            account.ErrEmailAlreadyExists,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "unexpected error",
			body:           `{"email": "john@example.com", "password": "secret-password"}`,
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			handler := newHandler(testcase.err, nil)
			r := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(testcase.body))
			rw := httptest.NewRecorder()

			handler.ServeHTTP(rw, r)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
		})
	}
}

func TestSignUpWithEmailHandlerRendersAccount(t *testing.T) {
	assert := require.New(t)
	captured := signupwithemail.Input{}
	handler := newHandler(nil, &captured)
	body := `{"email": "John@Example.com", "name": "John", "password": "secret-password"}`
	r := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	rw := httptest.NewRecorder()

	handler.ServeHTTP(rw, r)

	assert.Equal(http.StatusCreated, rw.Code)
	assert.Equal(account.NewEmail("John@Example.com"), captured.Email)
	assert.Equal(account.RawPassword("secret-password"), captured.Password)

	result := Result{}
	assert.Nil(json.Unmarshal(rw.Body.Bytes(), &result))
	assert.Equal(int64(7), result.Account.ID)
	assert.Equal("John", result.Account.Name)
	assert.NotContains(rw.Body.String(), "secret-password")
	assert.NotContains(rw.Body.String(), "password_hash")
}
