package allocation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/letterdesk/numbering-backend/internal/service/poollock"
)

var _ locker = &lockerMock{}

type lockerMock struct {
	WithLockFunc func(ctx context.Context, holderID uuid.UUID, holderName string, fn func(ctx context.Context) error) (poollock.Outcome, error)

	calls struct {
		WithLock []struct {
			Ctx        context.Context
			HolderID   uuid.UUID
			HolderName string
			Fn         func(ctx context.Context) error
		}
	}
	lockWithLock sync.RWMutex
}

func (mock *lockerMock) WithLock(ctx context.Context, holderID uuid.UUID, holderName string, fn func(ctx context.Context) error) (poollock.Outcome, error) {
	if mock.WithLockFunc == nil {
		panic("lockerMock.WithLockFunc: method is nil but locker.WithLock was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		HolderID   uuid.UUID
		HolderName string
		Fn         func(ctx context.Context) error
	}{Ctx: ctx, HolderID: holderID, HolderName: holderName, Fn: fn}
	mock.lockWithLock.Lock()
	mock.calls.WithLock = append(mock.calls.WithLock, callInfo)
	mock.lockWithLock.Unlock()
	return mock.WithLockFunc(ctx, holderID, holderName, fn)
}

func (mock *lockerMock) WithLockCalls() []struct {
	Ctx        context.Context
	HolderID   uuid.UUID
	HolderName string
	Fn         func(ctx context.Context) error
} {
	mock.lockWithLock.RLock()
	calls := mock.calls.WithLock
	mock.lockWithLock.RUnlock()
	return calls
}
