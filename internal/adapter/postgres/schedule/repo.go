// Package schedule implements the PoolSchedule repository using PostgreSQL.
package schedule

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/letterdesk/numbering-backend/internal/adapter/postgres"
	"github.com/letterdesk/numbering-backend/internal/domain"
)

// Repo provides pool schedule persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pool schedule repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByYearMonth returns the schedule for a month.
// Returns domain.ErrNotFound when no schedule exists yet.
func (r *Repo) GetByYearMonth(ctx context.Context, yearMonth string) (*domain.PoolSchedule, error) {
	const getSQL = `SELECT year_month, day1, day2, day3 FROM pool_schedules WHERE year_month = $1`

	var s domain.PoolSchedule
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, getSQL, yearMonth).
		Scan(&s.YearMonth, &s.Days[0], &s.Days[1], &s.Days[2])
	if err != nil {
		return nil, postgres.MapError(err, "pool_schedule", yearMonth)
	}

	return &s, nil
}

// Create inserts a schedule for a month. A concurrent creator racing on the
// same month surfaces as domain.ErrAlreadyExists via the primary key; callers
// treat that as benign and re-read the winner.
func (r *Repo) Create(ctx context.Context, s *domain.PoolSchedule) (*domain.PoolSchedule, error) {
	const createSQL = `INSERT INTO pool_schedules (year_month, day1, day2, day3) VALUES ($1, $2, $3, $4)`

	_, err := postgres.QuerierFromCtx(ctx, r.pool).
		Exec(ctx, createSQL, s.YearMonth, s.Days[0], s.Days[1], s.Days[2])
	if err != nil {
		return nil, postgres.MapError(err, "pool_schedule", s.YearMonth)
	}

	return s, nil
}
