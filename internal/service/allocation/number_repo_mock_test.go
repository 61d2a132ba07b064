package allocation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/letterdesk/numbering-backend/internal/domain"
)

var _ numberRepo = &numberRepoMock{}

type numberRepoMock struct {
	ListMonthFunc             func(ctx context.Context, from, to time.Time, status *domain.NumberStatus) ([]domain.NumberRecord, error)
	FindReusableCancelledFunc func(ctx context.Context, key domain.SeriesKey, below int) (*domain.NumberRecord, error)
	CountPoolFunc             func(ctx context.Context, from, to time.Time) (int, error)
	CreateFunc                func(ctx context.Context, rec *domain.NumberRecord) (*domain.NumberRecord, error)
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error

	calls struct {
		ListMonth []struct {
			Ctx    context.Context
			From   time.Time
			To     time.Time
			Status *domain.NumberStatus
		}
		FindReusableCancelled []struct {
			Ctx   context.Context
			Key   domain.SeriesKey
			Below int
		}
		CountPool []struct {
			Ctx  context.Context
			From time.Time
			To   time.Time
		}
		Create []struct {
			Ctx context.Context
			Rec *domain.NumberRecord
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockListMonth             sync.RWMutex
	lockFindReusableCancelled sync.RWMutex
	lockCountPool             sync.RWMutex
	lockCreate                sync.RWMutex
	lockDelete                sync.RWMutex
}

func (mock *numberRepoMock) ListMonth(ctx context.Context, from, to time.Time, status *domain.NumberStatus) ([]domain.NumberRecord, error) {
	if mock.ListMonthFunc == nil {
		panic("numberRepoMock.ListMonthFunc: method is nil but numberRepo.ListMonth was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		From   time.Time
		To     time.Time
		Status *domain.NumberStatus
	}{Ctx: ctx, From: from, To: to, Status: status}
	mock.lockListMonth.Lock()
	mock.calls.ListMonth = append(mock.calls.ListMonth, callInfo)
	mock.lockListMonth.Unlock()
	return mock.ListMonthFunc(ctx, from, to, status)
}

func (mock *numberRepoMock) ListMonthCalls() []struct {
	Ctx    context.Context
	From   time.Time
	To     time.Time
	Status *domain.NumberStatus
} {
	mock.lockListMonth.RLock()
	calls := mock.calls.ListMonth
	mock.lockListMonth.RUnlock()
	return calls
}

func (mock *numberRepoMock) FindReusableCancelled(ctx context.Context, key domain.SeriesKey, below int) (*domain.NumberRecord, error) {
	if mock.FindReusableCancelledFunc == nil {
		panic("numberRepoMock.FindReusableCancelledFunc: method is nil but numberRepo.FindReusableCancelled was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Key   domain.SeriesKey
		Below int
	}{Ctx: ctx, Key: key, Below: below}
	mock.lockFindReusableCancelled.Lock()
	mock.calls.FindReusableCancelled = append(mock.calls.FindReusableCancelled, callInfo)
	mock.lockFindReusableCancelled.Unlock()
	return mock.FindReusableCancelledFunc(ctx, key, below)
}

func (mock *numberRepoMock) FindReusableCancelledCalls() []struct {
	Ctx   context.Context
	Key   domain.SeriesKey
	Below int
} {
	mock.lockFindReusableCancelled.RLock()
	calls := mock.calls.FindReusableCancelled
	mock.lockFindReusableCancelled.RUnlock()
	return calls
}

func (mock *numberRepoMock) CountPool(ctx context.Context, from, to time.Time) (int, error) {
	if mock.CountPoolFunc == nil {
		panic("numberRepoMock.CountPoolFunc: method is nil but numberRepo.CountPool was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		From time.Time
		To   time.Time
	}{Ctx: ctx, From: from, To: to}
	mock.lockCountPool.Lock()
	mock.calls.CountPool = append(mock.calls.CountPool, callInfo)
	mock.lockCountPool.Unlock()
	return mock.CountPoolFunc(ctx, from, to)
}

func (mock *numberRepoMock) CountPoolCalls() []struct {
	Ctx  context.Context
	From time.Time
	To   time.Time
} {
	mock.lockCountPool.RLock()
	calls := mock.calls.CountPool
	mock.lockCountPool.RUnlock()
	return calls
}

func (mock *numberRepoMock) Create(ctx context.Context, rec *domain.NumberRecord) (*domain.NumberRecord, error) {
	if mock.CreateFunc == nil {
		panic("numberRepoMock.CreateFunc: method is nil but numberRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec *domain.NumberRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *numberRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rec *domain.NumberRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *numberRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("numberRepoMock.DeleteFunc: method is nil but numberRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *numberRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
