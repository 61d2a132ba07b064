// Package schedule derives and persists the per-month emergency pool
// generation days. One schedule exists per month; generation happens lazily
// on the first check and is never repeated.
package schedule

import (
	"context"
	"log/slog"

	"github.com/letterdesk/numbering-backend/internal/domain"
)

//go:generate moq -out schedule_repo_mock_test.go -pkg schedule . scheduleRepo

type scheduleRepo interface {
	GetByYearMonth(ctx context.Context, yearMonth string) (*domain.PoolSchedule, error)
	Create(ctx context.Context, s *domain.PoolSchedule) (*domain.PoolSchedule, error)
}

// Rand is the source of randomness for day draws. math/rand/v2's *Rand
// satisfies it; tests inject a deterministic sequence.
type Rand interface {
	IntN(n int) int
}

// Service provides pool schedule management.
type Service struct {
	schedules scheduleRepo
	rand      Rand
	log       *slog.Logger
}

// NewService creates a new schedule service.
func NewService(log *slog.Logger, schedules scheduleRepo, rand Rand) *Service {
	return &Service{
		schedules: schedules,
		rand:      rand,
		log:       log.With("service", "schedule"),
	}
}
