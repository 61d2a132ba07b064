package poollock

import (
	"context"
	"sync"

	"github.com/letterdesk/numbering-backend/internal/domain"
)

var _ lockRepo = &lockRepoMock{}

type lockRepoMock struct {
	GetFunc   func(ctx context.Context) (*domain.AllocationLock, error)
	ClearFunc func(ctx context.Context) error

	calls struct {
		Get []struct {
			Ctx context.Context
		}
		Clear []struct {
			Ctx context.Context
		}
	}
	lockGet   sync.RWMutex
	lockClear sync.RWMutex
}

func (mock *lockRepoMock) Get(ctx context.Context) (*domain.AllocationLock, error) {
	if mock.GetFunc == nil {
		panic("lockRepoMock.GetFunc: method is nil but lockRepo.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx)
}

func (mock *lockRepoMock) GetCalls() []struct {
	Ctx context.Context
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *lockRepoMock) Clear(ctx context.Context) error {
	if mock.ClearFunc == nil {
		panic("lockRepoMock.ClearFunc: method is nil but lockRepo.Clear was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockClear.Lock()
	mock.calls.Clear = append(mock.calls.Clear, callInfo)
	mock.lockClear.Unlock()
	return mock.ClearFunc(ctx)
}

func (mock *lockRepoMock) ClearCalls() []struct {
	Ctx context.Context
} {
	mock.lockClear.RLock()
	calls := mock.calls.Clear
	mock.lockClear.RUnlock()
	return calls
}
