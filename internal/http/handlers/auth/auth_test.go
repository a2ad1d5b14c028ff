package auth

import (
	"net/http"
	"net/http/httptest"
	"proposalai/internal/core/domain/account"
	"proposalai/internal/core/services/auth"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToken(t *testing.T) {
	cases := []struct {
		header   string
		expected account.SessionToken
		ok       bool
	}{
		{header: "", ok: false},
		{header: "Bearer ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "Bearer abc", expected: account.SessionToken("abc"), ok: true},
		{header: "Bearer " + strings.Repeat("a", AUTH_TOKEN_MAX_LEN+1), ok: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.header, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/profile/me", nil)
			if testcase.header != "" {
				r.Header.Set("Authorization", testcase.header)
			}

			token, ok := ParseToken(r)

			assert.Equal(t, testcase.ok, ok)
			assert.Equal(t, testcase.expected, token)
		})
	}
}

func TestSetAuthTokenToContext(t *testing.T) {
	var got interface{}
	handler := SetAuthTokenToContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Context().Value(auth.CONTEXT_AUTH_TOKEN_KEY)
	}))
	r := httptest.NewRequest(http.MethodGet, "/profile/me", nil)
	r.Header.Set("Authorization", "Bearer abc")

	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, account.SessionToken("abc"), got)
}
