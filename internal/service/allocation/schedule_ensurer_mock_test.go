package allocation

import (
	"context"
	"sync"

	"github.com/letterdesk/numbering-backend/internal/domain"
)

var _ scheduleEnsurer = &scheduleEnsurerMock{}

type scheduleEnsurerMock struct {
	EnsureFunc func(ctx context.Context, yearMonth string) (*domain.PoolSchedule, error)

	calls struct {
		Ensure []struct {
			Ctx       context.Context
			YearMonth string
		}
	}
	lockEnsure sync.RWMutex
}

func (mock *scheduleEnsurerMock) Ensure(ctx context.Context, yearMonth string) (*domain.PoolSchedule, error) {
	if mock.EnsureFunc == nil {
		panic("scheduleEnsurerMock.EnsureFunc: method is nil but scheduleEnsurer.Ensure was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		YearMonth string
	}{Ctx: ctx, YearMonth: yearMonth}
	mock.lockEnsure.Lock()
	mock.calls.Ensure = append(mock.calls.Ensure, callInfo)
	mock.lockEnsure.Unlock()
	return mock.EnsureFunc(ctx, yearMonth)
}

func (mock *scheduleEnsurerMock) EnsureCalls() []struct {
	Ctx       context.Context
	YearMonth string
} {
	mock.lockEnsure.RLock()
	calls := mock.calls.Ensure
	mock.lockEnsure.RUnlock()
	return calls
}
