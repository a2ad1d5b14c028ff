package uow

import (
	"context"
	"fmt"
	"proposalai/internal/core/domain/account"
	passwordreset "proposalai/internal/core/domain/password_reset"
	"sync"
)

// FakeUnitOfWorkContext holds the global lock of its FakeUnitOfWork from Begin
// until Commit or Rollback, so fake transactions are serialized. Rollback
// restores the repositories to their state at Begin.
type FakeUnitOfWorkContext struct {
	AccountRepository    *account.FakeRepository
	ResetTokenRepository *passwordreset.FakeRepository
	WasRollbackCalled    bool
	WasCommitCalled      bool

	commitError     error
	accountsAtBegin []account.Account
	tokensAtBegin   []passwordreset.ResetToken
	release         func()
	done            bool
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	if c.done {
		return nil
	}
	c.AccountRepository.Restore(c.accountsAtBegin)
	c.ResetTokenRepository.Restore(c.tokensAtBegin)
	c.finish()
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	if c.done {
		return fmt.Errorf("transaction is already closed")
	}
	if c.commitError != nil {
		c.AccountRepository.Restore(c.accountsAtBegin)
		c.ResetTokenRepository.Restore(c.tokensAtBegin)
		c.finish()
		return c.commitError
	}
	c.finish()
	return nil
}

func (c *FakeUnitOfWorkContext) Accounts() account.Repository {
	return c.AccountRepository
}

func (c *FakeUnitOfWorkContext) ResetTokens() passwordreset.Repository {
	return c.ResetTokenRepository
}

func (c *FakeUnitOfWorkContext) finish() {
	c.done = true
	c.release()
}

type FakeUnitOfWork struct {
	AccountRepository    *account.FakeRepository
	ResetTokenRepository *passwordreset.FakeRepository
	BeginError           error
	CommitError          error

	started []*FakeUnitOfWorkContext
	txLock  sync.Mutex
	lock    sync.Mutex
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		AccountRepository:    account.NewFakeRepository(),
		ResetTokenRepository: passwordreset.NewFakeRepository(),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginError != nil {
		return nil, u.BeginError
	}
	u.txLock.Lock()
	c := &FakeUnitOfWorkContext{
		AccountRepository:    u.AccountRepository,
		ResetTokenRepository: u.ResetTokenRepository,
		commitError:          u.CommitError,
		accountsAtBegin:      u.AccountRepository.Snapshot(),
		tokensAtBegin:        u.ResetTokenRepository.Snapshot(),
		release:              u.txLock.Unlock,
	}
	u.lock.Lock()
	u.started = append(u.started, c)
	u.lock.Unlock()
	return c, nil
}

func (u *FakeUnitOfWork) StartedCount() int {
	u.lock.Lock()
	defer u.lock.Unlock()
	return len(u.started)
}

func (u *FakeUnitOfWork) Last() *FakeUnitOfWorkContext {
	u.lock.Lock()
	defer u.lock.Unlock()
	l := len(u.started)
	if l == 0 {
		panic("No unit of work has been started.")
	}
	return u.started[l-1]
}
