package account

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

type FakeRepository struct {
	Accounts    []Account
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Accounts: make([]Account, 0, 10)}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not create account %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, a := range r.Accounts {
		if a.Email == input.Email {
			return a, ErrEmailAlreadyExists
		}
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	a = Account{
		ID:           maxID + 1,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		IsVerified:   input.IsVerified,
		CreatedAt:    input.CreatedAt,
	}
	r.Accounts = append(r.Accounts, a)
	return a, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not get account %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeRepository) GetByEmail(ctx context.Context, email Email) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not get account %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeRepository) SetPassword(ctx context.Context, id ID, hash PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password of account %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, a := range r.Accounts {
		if a.ID == id {
			r.Accounts[ix].PasswordHash = hash
			return nil
		}
	}
	return ErrAccountDoesNotExist
}

func (r *FakeRepository) Snapshot() []Account {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Account(nil), r.Accounts...)
}

func (r *FakeRepository) Restore(accounts []Account) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Accounts = accounts
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

// FakeSessionTokens issues "session-<id>" tokens and parses them back.
type FakeSessionTokens struct {
	ReturnError bool
}

func NewFakeSessionTokens() *FakeSessionTokens {
	return &FakeSessionTokens{}
}

func (s *FakeSessionTokens) IssueToken(a Account) (SessionToken, error) {
	if s.ReturnError {
		return SessionToken(""), fmt.Errorf("could not issue session token")
	}
	return SessionToken(fmt.Sprintf("session-%d", a.ID)), nil
}

func (s *FakeSessionTokens) ParseToken(token SessionToken) (ID, error) {
	raw, ok := strings.CutPrefix(string(token), "session-")
	if !ok {
		return ID(0), ErrInvalidSessionToken
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ID(0), ErrInvalidSessionToken
	}
	return ID(id), nil
}
