package passwordreset

import (
	"context"
	"fmt"
	"proposalai/internal/core/domain/account"
	"sync"
	"time"
)

type FakeRepository struct {
	Tokens      []ResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Tokens: make([]ResetToken, 0, 10)}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (t ResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not create reset token for account %d", input.AccountID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, t := range r.Tokens {
		if t.Digest == input.Digest {
			return t, fmt.Errorf("reset token digest already exists")
		}
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	t = ResetToken{
		ID:        maxID + 1,
		AccountID: input.AccountID,
		Digest:    input.Digest,
		CreatedAt: input.CreatedAt,
		ExpiresAt: input.ExpiresAt,
	}
	r.Tokens = append(r.Tokens, t)
	return t, nil
}

func (r *FakeRepository) GetByDigest(ctx context.Context, digest Digest) (t ResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not get reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.Digest == digest {
			return t, nil
		}
	}
	return t, ErrInvalidToken
}

func (r *FakeRepository) GetByDigestForUpdate(ctx context.Context, digest Digest) (ResetToken, error) {
	return r.GetByDigest(ctx, digest)
}

func (r *FakeRepository) MarkConsumed(ctx context.Context, id ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not mark reset token %d as consumed", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tokens {
		if t.ID == id {
			r.Tokens[ix].IsConsumed = true
			return nil
		}
	}
	return ErrInvalidToken
}

func (r *FakeRepository) ConsumeOutstanding(ctx context.Context, accountID account.ID, at time.Time) (int64, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not consume outstanding reset tokens of account %d", accountID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	count := int64(0)
	for ix, t := range r.Tokens {
		if t.AccountID == accountID && t.IsLive(at) {
			r.Tokens[ix].IsConsumed = true
			count++
		}
	}
	return count, nil
}

func (r *FakeRepository) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Tokens)
}

func (r *FakeRepository) Snapshot() []ResetToken {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]ResetToken(nil), r.Tokens...)
}

func (r *FakeRepository) Restore(tokens []ResetToken) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Tokens = tokens
}

// FakeTokenGenerator returns "<prefix>-1", "<prefix>-2", ...
type FakeTokenGenerator struct {
	Prefix      string
	ReturnError bool
	issued      int
	lock        sync.Mutex
}

func NewFakeTokenGenerator(prefix string) *FakeTokenGenerator {
	return &FakeTokenGenerator{Prefix: prefix}
}

func (g *FakeTokenGenerator) GenerateToken() (Token, error) {
	if g.ReturnError {
		return Token(""), fmt.Errorf("could not read random bytes")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	g.issued++
	return Token(fmt.Sprintf("%s-%d", g.Prefix, g.issued)), nil
}

type FakeSender struct {
	Sent        []Notification
	ReturnError bool
	// Block makes the sender wait for context cancellation.
	Block bool
	lock  sync.Mutex
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) SendPasswordResetToken(ctx context.Context, n Notification) error {
	if s.Block {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, n)
	return nil
}

func (s *FakeSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeSender) LastSent() Notification {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}
