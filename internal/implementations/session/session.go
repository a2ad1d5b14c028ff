package session

import (
	"errors"
	"fmt"
	"proposalai/internal/core/domain/account"
	e "proposalai/internal/core/domain/errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "proposalai"

// JWT issues HS256 session tokens whose subject is the account ID.
type JWT struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewJWT(secret string, validity time.Duration, now func() time.Time) *JWT {
	if secret == "" {
		panic("session token secret must not be empty")
	}
	if validity <= 0 {
		panic("session token validity must be positive")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &JWT{secret: []byte(secret), validity: validity, now: now}
}

func (j *JWT) IssueToken(a account.Account) (account.SessionToken, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(int64(a.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.validity)),
	})
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return account.SessionToken(""), err
	}
	return account.SessionToken(signed), nil
}

func (j *JWT) ParseToken(token account.SessionToken) (account.ID, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(
		string(token),
		claims,
		func(t *jwt.Token) (interface{}, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return account.ID(0), fmt.Errorf("%w: %v", account.ErrInvalidSessionToken, err)
	}
	if !parsed.Valid {
		return account.ID(0), account.ErrInvalidSessionToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return account.ID(0), errors.Join(account.ErrInvalidSessionToken, err)
	}
	return account.ID(id), nil
}
