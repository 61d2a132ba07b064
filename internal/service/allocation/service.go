// Package allocation implements emergency pool generation: it scans a month's
// issued numbers for per-series high-water marks and tops the pool up by
// reusing cancelled sequences or minting new ones, guarded by the shared
// allocation lock.
package allocation

//go:generate moq -out number_repo_mock_test.go -pkg allocation . numberRepo
//go:generate moq -out schedule_ensurer_mock_test.go -pkg allocation . scheduleEnsurer
//go:generate moq -out locker_mock_test.go -pkg allocation . locker
//go:generate moq -out audit_repo_mock_test.go -pkg allocation . auditRepo
//go:generate moq -out tx_manager_mock_test.go -pkg allocation . txManager

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/letterdesk/numbering-backend/internal/clock"
	"github.com/letterdesk/numbering-backend/internal/domain"
	"github.com/letterdesk/numbering-backend/internal/service/poollock"
)

type numberRepo interface {
	ListMonth(ctx context.Context, from, to time.Time, status *domain.NumberStatus) ([]domain.NumberRecord, error)
	FindReusableCancelled(ctx context.Context, key domain.SeriesKey, below int) (*domain.NumberRecord, error)
	CountPool(ctx context.Context, from, to time.Time) (int, error)
	Create(ctx context.Context, rec *domain.NumberRecord) (*domain.NumberRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type scheduleEnsurer interface {
	Ensure(ctx context.Context, yearMonth string) (*domain.PoolSchedule, error)
}

type locker interface {
	WithLock(ctx context.Context, holderID uuid.UUID, holderName string, fn func(ctx context.Context) error) (poollock.Outcome, error)
}

type auditRepo interface {
	Append(ctx context.Context, rec domain.PoolRunAudit) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config tunes pool sizing and run identity.
type Config struct {
	// TargetSize is the pool floor per month; runs attempt every resolved
	// series, so the final count may exceed it.
	TargetSize int
	// ReservationExpiryYears is how far out pool reservations expire.
	ReservationExpiryYears int
	// RunnerID and RunnerName identify this process in logs and audit rows.
	RunnerID   uuid.UUID
	RunnerName string
}

// Service orchestrates emergency pool generation runs.
type Service struct {
	numbers   numberRepo
	schedules scheduleEnsurer
	locks     locker
	audits    auditRepo
	tx        txManager
	clock     clock.Clock
	loc       *time.Location
	cfg       Config
	log       *slog.Logger
}

// NewService creates a new pool allocation service. loc is the local zone used
// to derive "today" for the schedule check.
func NewService(
	log *slog.Logger,
	numbers numberRepo,
	schedules scheduleEnsurer,
	locks locker,
	audits auditRepo,
	tx txManager,
	clk clock.Clock,
	loc *time.Location,
	cfg Config,
) *Service {
	return &Service{
		numbers:   numbers,
		schedules: schedules,
		locks:     locks,
		audits:    audits,
		tx:        tx,
		clock:     clk,
		loc:       loc,
		cfg:       cfg,
		log:       log.With("service", "allocation"),
	}
}
