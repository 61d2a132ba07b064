// Package poollock implements the mutual-exclusion guard around pool
// generation. The guard only inspects the shared lock row; claiming the lock
// belongs to the interactive reservation flow.
package poollock

//go:generate moq -out lock_repo_mock_test.go -pkg poollock . lockRepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/letterdesk/numbering-backend/internal/clock"
	"github.com/letterdesk/numbering-backend/internal/domain"
)

// Outcome reports how a guarded call ended.
type Outcome string

const (
	// OutcomeProceeded means the action ran to completion (its own error, if
	// any, is returned alongside).
	OutcomeProceeded Outcome = "proceeded"
	// OutcomeDeferred means a fresh lock was still held after the backoff and
	// the action never ran. Contention is a normal result, not an error.
	OutcomeDeferred Outcome = "deferred"
)

type lockRepo interface {
	Get(ctx context.Context) (*domain.AllocationLock, error)
	Clear(ctx context.Context) error
}

// Config tunes the guard's staleness and contention handling.
type Config struct {
	// StaleAfter is how old a held lock must be before it is presumed
	// abandoned and force-cleared.
	StaleAfter time.Duration
	// RetryAfter is the single backoff before re-reading a fresh lock.
	RetryAfter time.Duration
	// FailOpen makes an unreadable lock row count as free instead of
	// aborting the run.
	FailOpen bool
}

// Service guards pool generation with the singleton allocation lock.
type Service struct {
	locks lockRepo
	clock clock.Clock
	cfg   Config
	log   *slog.Logger
}

// NewService creates a new lock coordinator service.
func NewService(log *slog.Logger, locks lockRepo, clk clock.Clock, cfg Config) *Service {
	return &Service{
		locks: locks,
		clock: clk,
		cfg:   cfg,
		log:   log.With("service", "poollock"),
	}
}

// WithLock runs fn unless a fresh lock is held by someone else. A stale lock
// is force-cleared first; a fresh one is retried once after the backoff and
// then reported as OutcomeDeferred without running fn. Holder identity is
// used for logging only.
func (s *Service) WithLock(ctx context.Context, holderID uuid.UUID, holderName string, fn func(ctx context.Context) error) (Outcome, error) {
	log := s.log.With(
		slog.String("holder_id", holderID.String()),
		slog.String("holder_name", holderName),
	)

	free, err := s.evaluate(ctx, log)
	if err != nil {
		return OutcomeDeferred, err
	}
	if !free {
		log.InfoContext(ctx, "lock held, backing off",
			slog.Duration("retry_after", s.cfg.RetryAfter),
		)
		s.clock.Sleep(ctx, s.cfg.RetryAfter)
		if err := ctx.Err(); err != nil {
			return OutcomeDeferred, err
		}

		free, err = s.evaluate(ctx, log)
		if err != nil {
			return OutcomeDeferred, err
		}
		if !free {
			log.InfoContext(ctx, "lock still held after backoff, deferring run")
			return OutcomeDeferred, nil
		}
	}

	return OutcomeProceeded, fn(ctx)
}

// evaluate reads the lock once and reports whether the caller may proceed.
// Clears a stale lock as a side effect.
func (s *Service) evaluate(ctx context.Context, log *slog.Logger) (bool, error) {
	lock, err := s.locks.Get(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		// A missing lock row must never deadlock pool generation.
		log.WarnContext(ctx, "lock row missing, treating as free")
		return true, nil
	case s.cfg.FailOpen:
		log.WarnContext(ctx, "lock read failed, proceeding fail-open", slog.Any("error", err))
		return true, nil
	default:
		return false, fmt.Errorf("read allocation lock: %w", err)
	}

	if !lock.Locked {
		return true, nil
	}

	if lock.IsStale(s.clock.Now(), s.cfg.StaleAfter) {
		log.WarnContext(ctx, "clearing stale lock",
			slog.Any("stale_holder", lock.HolderName),
			slog.Any("locked_at", lock.LockedAt),
		)
		if err := s.locks.Clear(ctx); err != nil {
			return false, fmt.Errorf("clear stale lock: %w", err)
		}
		return true, nil
	}

	return false, nil
}
