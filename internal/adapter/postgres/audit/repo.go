// Package audit implements the pool run audit repository using PostgreSQL.
// The table is an insert-only sink; nothing in the allocator reads it back.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/letterdesk/numbering-backend/internal/adapter/postgres"
	"github.com/letterdesk/numbering-backend/internal/domain"
)

// Repo provides run audit persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Append inserts a run outcome record.
func (r *Repo) Append(ctx context.Context, rec domain.PoolRunAudit) error {
	const appendSQL = `
		INSERT INTO pool_run_audit (id, year_month, status, reserved, pool_count, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var detail []byte
	if rec.Detail != nil {
		var err error
		detail, err = json.Marshal(rec.Detail)
		if err != nil {
			return fmt.Errorf("pool_run_audit marshal detail: %w", err)
		}
	}

	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, appendSQL,
		rec.ID, rec.YearMonth, rec.Status, rec.Reserved, rec.PoolCount, detail, rec.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "pool_run_audit", rec.ID.String())
	}

	return nil
}
