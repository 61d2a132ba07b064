// Package poollock implements the AllocationLock repository using PostgreSQL.
// The lock is a single pre-seeded row; this repository only reads and clears
// it; acquisition belongs to the interactive reservation flow.
package poollock

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/letterdesk/numbering-backend/internal/adapter/postgres"
	"github.com/letterdesk/numbering-backend/internal/domain"
)

// Repo provides allocation lock persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new allocation lock repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the singleton lock row.
// Returns domain.ErrNotFound when the row is missing.
func (r *Repo) Get(ctx context.Context) (*domain.AllocationLock, error) {
	const getSQL = `SELECT id, locked, holder_id, holder_name, locked_at FROM allocation_locks WHERE id = $1`

	var l domain.AllocationLock
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, getSQL, domain.AllocationLockID).
		Scan(&l.ID, &l.Locked, &l.HolderID, &l.HolderName, &l.LockedAt)
	if err != nil {
		return nil, postgres.MapError(err, "allocation_lock", strconv.Itoa(domain.AllocationLockID))
	}

	return &l, nil
}

// Clear force-releases the lock: locked=false, holder fields nulled. Used for
// stale-holder recovery; idempotent on an already free lock.
func (r *Repo) Clear(ctx context.Context) error {
	const clearSQL = `
		UPDATE allocation_locks
		SET locked = FALSE, holder_id = NULL, holder_name = NULL, locked_at = NULL
		WHERE id = $1`

	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, clearSQL, domain.AllocationLockID)
	if err != nil {
		return postgres.MapError(err, "allocation_lock", strconv.Itoa(domain.AllocationLockID))
	}

	return nil
}
