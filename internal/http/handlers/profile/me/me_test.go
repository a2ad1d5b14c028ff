package me

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"proposalai/internal/core/domain/account"
	"proposalai/internal/core/services"
	service "proposalai/internal/core/services/get_current_account"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeHandler(t *testing.T) {
	cases := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "unauthenticated", err: account.ErrInvalidSessionToken, expectedStatus: http.StatusUnauthorized},
		{name: "unexpected error", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}
	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (result service.Result, err error) {
					result.Account = account.Account{ID: account.ID(3), Email: "john@example.com", Role: account.RoleUser}
					return result, testcase.err
				},
			))
			r := httptest.NewRequest(http.MethodGet, "/profile/me", nil)
			rw := httptest.NewRecorder()

			handler.ServeHTTP(rw, r)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			if testcase.err == nil {
				assert.Contains(t, rw.Body.String(), `"email":"john@example.com"`)
			}
		})
	}
}
