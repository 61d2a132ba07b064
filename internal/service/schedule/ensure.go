package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/letterdesk/numbering-backend/internal/domain"
)

// Ensure returns the pool generation schedule for yearMonth, creating it on
// first access. Idempotent: an existing schedule is returned unchanged, and
// losing a concurrent-create race falls back to re-reading the winner.
func (s *Service) Ensure(ctx context.Context, yearMonth string) (*domain.PoolSchedule, error) {
	if !domain.ValidYearMonth(yearMonth) {
		return nil, domain.NewValidationError("year_month", "must be YYYY-MM")
	}

	existing, err := s.schedules.GetByYearMonth(ctx, yearMonth)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("read schedule %s: %w", yearMonth, err)
	}

	generated := s.generate(yearMonth)

	created, err := s.schedules.Create(ctx, generated)
	if err != nil {
		// A concurrent caller created the month first; its schedule wins.
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.log.InfoContext(ctx, "schedule created concurrently, re-reading",
				slog.String("year_month", yearMonth),
			)
			return s.schedules.GetByYearMonth(ctx, yearMonth)
		}
		return nil, fmt.Errorf("create schedule %s: %w", yearMonth, err)
	}

	s.log.InfoContext(ctx, "schedule created",
		slog.String("year_month", yearMonth),
		slog.Int("day1", created.Days[0]),
		slog.Int("day2", created.Days[1]),
		slog.Int("day3", created.Days[2]),
	)

	return created, nil
}

// generate draws one day uniformly from each range and sorts ascending.
func (s *Service) generate(yearMonth string) *domain.PoolSchedule {
	var days [3]int
	for i, r := range domain.ScheduleDayRanges {
		lo, hi := r[0], r[1]
		days[i] = lo + s.rand.IntN(hi-lo+1)
	}
	sort.Ints(days[:])

	return &domain.PoolSchedule{YearMonth: yearMonth, Days: days}
}
