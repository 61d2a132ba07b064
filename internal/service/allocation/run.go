package allocation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/letterdesk/numbering-backend/internal/domain"
	"github.com/letterdesk/numbering-backend/internal/service/poollock"
)

// Run executes one pool generation cycle for the requested month: ensure the
// schedule exists, bail out early when not scheduled, the pool is full, or
// the month has no series, then allocate one record per series under the
// shared lock. Failures on individual series are logged and skipped; only
// schedule, resolution, or lock-store failures are fatal for the run.
func (s *Service) Run(ctx context.Context, in RunInput) (*RunResult, error) {
	now := s.clock.Now().In(s.loc)

	yearMonth := in.YearMonth
	if yearMonth == "" {
		yearMonth = now.Format("2006-01")
	} else if !domain.ValidYearMonth(yearMonth) {
		return nil, domain.NewValidationError("year_month", "must be YYYY-MM")
	}
	today := now.Day()

	log := s.log.With(
		slog.String("year_month", yearMonth),
		slog.Int("today", today),
		slog.Bool("force", in.Force),
	)

	sched, err := s.schedules.Ensure(ctx, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("ensure schedule: %w", err)
	}

	res := &RunResult{
		YearMonth:     yearMonth,
		Today:         today,
		ScheduledDays: sched.Days,
	}

	if !in.Force && !sched.ContainsDay(today) {
		res.Status = StatusNotScheduled
		log.InfoContext(ctx, "not a scheduled pool day, skipping",
			slog.Any("scheduled_days", sched.Days),
		)
		s.appendAudit(ctx, res)
		return res, nil
	}

	from, to, err := domain.MonthRange(yearMonth)
	if err != nil {
		return nil, err
	}

	poolCount, err := s.numbers.CountPool(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("count pool: %w", err)
	}
	res.PoolCount = poolCount
	if poolCount >= s.cfg.TargetSize {
		res.Status = StatusPoolComplete
		log.InfoContext(ctx, "pool already at target", slog.Int("pool_count", poolCount))
		s.appendAudit(ctx, res)
		return res, nil
	}

	combos, err := s.resolveCombinations(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("resolve combinations: %w", err)
	}
	if len(combos) == 0 {
		res.Status = StatusNoCombinations
		log.InfoContext(ctx, "no active combinations this month")
		s.appendAudit(ctx, res)
		return res, nil
	}

	// Keep the issue date inside the month being topped up so the pool count
	// scan sees the new records on forced runs for another month.
	issueDate := now
	if now.Before(from) || !now.Before(to) {
		issueDate = from
	}

	var allocated []AllocatedNumber
	outcome, err := s.locks.WithLock(ctx, s.cfg.RunnerID, s.cfg.RunnerName, func(ctx context.Context) error {
		for _, combo := range combos {
			rec, err := s.allocateOne(ctx, combo, issueDate, now)
			if err != nil {
				log.WarnContext(ctx, "allocation failed for series, skipping",
					slog.String("series", combo.Key.FullNumber(combo.Highest)),
					slog.Any("error", err),
				)
				continue
			}
			allocated = append(allocated, *rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pool allocation: %w", err)
	}
	if outcome == poollock.OutcomeDeferred {
		res.Status = StatusDeferred
		log.InfoContext(ctx, "allocation lock contended, run deferred")
		s.appendAudit(ctx, res)
		return res, nil
	}

	res.Status = StatusAllocated
	res.Reserved = len(allocated)
	res.PoolCount = poolCount + len(allocated)
	res.Records = allocated

	log.InfoContext(ctx, "pool generation finished",
		slog.Int("reserved", res.Reserved),
		slog.Int("pool_count", res.PoolCount),
	)
	s.appendAudit(ctx, res)

	return res, nil
}

// appendAudit records the run outcome. The audit table is a best-effort sink:
// a failed append is logged, never surfaced to the caller.
func (s *Service) appendAudit(ctx context.Context, res *RunResult) {
	detail := map[string]any{
		"today":          res.Today,
		"scheduled_days": res.ScheduledDays,
	}
	if len(res.Records) > 0 {
		records := make([]map[string]any, 0, len(res.Records))
		for _, rec := range res.Records {
			records = append(records, map[string]any{
				"full_number": rec.FullNumber,
				"sequence":    rec.Sequence,
				"reused":      rec.Reused,
			})
		}
		detail["records"] = records
	}

	err := s.audits.Append(ctx, domain.PoolRunAudit{
		ID:        uuid.New(),
		YearMonth: res.YearMonth,
		Status:    string(res.Status),
		Reserved:  res.Reserved,
		PoolCount: res.PoolCount,
		Detail:    detail,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "audit append failed", slog.Any("error", err))
	}
}
