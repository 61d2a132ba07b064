package schedule

import (
	"context"
	"sync"

	"github.com/letterdesk/numbering-backend/internal/domain"
)

var _ scheduleRepo = &scheduleRepoMock{}

type scheduleRepoMock struct {
	GetByYearMonthFunc func(ctx context.Context, yearMonth string) (*domain.PoolSchedule, error)
	CreateFunc         func(ctx context.Context, s *domain.PoolSchedule) (*domain.PoolSchedule, error)

	calls struct {
		GetByYearMonth []struct {
			Ctx       context.Context
			YearMonth string
		}
		Create []struct {
			Ctx context.Context
			S   *domain.PoolSchedule
		}
	}
	lockGetByYearMonth sync.RWMutex
	lockCreate         sync.RWMutex
}

func (mock *scheduleRepoMock) GetByYearMonth(ctx context.Context, yearMonth string) (*domain.PoolSchedule, error) {
	if mock.GetByYearMonthFunc == nil {
		panic("scheduleRepoMock.GetByYearMonthFunc: method is nil but scheduleRepo.GetByYearMonth was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		YearMonth string
	}{Ctx: ctx, YearMonth: yearMonth}
	mock.lockGetByYearMonth.Lock()
	mock.calls.GetByYearMonth = append(mock.calls.GetByYearMonth, callInfo)
	mock.lockGetByYearMonth.Unlock()
	return mock.GetByYearMonthFunc(ctx, yearMonth)
}

func (mock *scheduleRepoMock) GetByYearMonthCalls() []struct {
	Ctx       context.Context
	YearMonth string
} {
	mock.lockGetByYearMonth.RLock()
	calls := mock.calls.GetByYearMonth
	mock.lockGetByYearMonth.RUnlock()
	return calls
}

func (mock *scheduleRepoMock) Create(ctx context.Context, s *domain.PoolSchedule) (*domain.PoolSchedule, error) {
	if mock.CreateFunc == nil {
		panic("scheduleRepoMock.CreateFunc: method is nil but scheduleRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.PoolSchedule
	}{Ctx: ctx, S: s}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *scheduleRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   *domain.PoolSchedule
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
