// Package number implements the NumberRecord repository using PostgreSQL.
// It provides the scans and mutations the pool allocator depends on:
// month-scoped listings, cancelled-number lookup, insert and delete.
package number

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/letterdesk/numbering-backend/internal/adapter/postgres"
	"github.com/letterdesk/numbering-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const columns = `id, region, unit, issue, sub_issue1, sub_issue2, sequence, full_number,
	issue_date, status, owner_id, reserved_at, expires_at, annotation`

// Repo provides number record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new number record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListMonth returns records issued within [from, to), excluding pool-origin
// rows, ordered by sequence descending. When status is non-nil only records
// in that status are returned. An empty result is not an error.
func (r *Repo) ListMonth(ctx context.Context, from, to time.Time, status *domain.NumberStatus) ([]domain.NumberRecord, error) {
	q := psql.Select(columns).
		From("number_records").
		Where(sq.GtOrEq{"issue_date": from}).
		Where(sq.Lt{"issue_date": to}).
		Where(sq.NotEq{"annotation": domain.PoolAnnotation}).
		OrderBy("sequence DESC")
	if status != nil {
		q = q.Where(sq.Eq{"status": string(*status)})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list month query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list number_records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FindReusableCancelled returns the cancelled, non-pool record with the
// highest sequence strictly below the given bound for a series. Returns
// domain.ErrNotFound when no such record exists.
func (r *Repo) FindReusableCancelled(ctx context.Context, key domain.SeriesKey, below int) (*domain.NumberRecord, error) {
	q := psql.Select(columns).
		From("number_records").
		Where(seriesEq(key)).
		Where(sq.Eq{"status": string(domain.StatusCancelled)}).
		Where(sq.NotEq{"annotation": domain.PoolAnnotation}).
		Where(sq.Lt{"sequence": below}).
		OrderBy("sequence DESC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reusable query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...)
	rec, err := scanRecord(row)
	if err != nil {
		ref := fmt.Sprintf("%s.%s-%s seq<%d", key.Region, key.Unit, key.Issue, below)
		return nil, postgres.MapError(err, "number_record", ref)
	}

	return rec, nil
}

// CountPool returns the number of pool-origin records issued within [from, to).
func (r *Repo) CountPool(ctx context.Context, from, to time.Time) (int, error) {
	const countSQL = `
		SELECT count(*) FROM number_records
		WHERE issue_date >= $1 AND issue_date < $2 AND annotation = $3`

	var count int
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, countSQL, from, to, domain.PoolAnnotation).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pool number_records: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const insertSQL = `
	INSERT INTO number_records
	    (id, region, unit, issue, sub_issue1, sub_issue2, sequence, full_number,
	     issue_date, status, owner_id, reserved_at, expires_at, annotation)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// Create inserts a new number record. A unique violation on the active
// series+sequence index surfaces as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, rec *domain.NumberRecord) (*domain.NumberRecord, error) {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertSQL,
		rec.ID, rec.Series.Region, rec.Series.Unit, rec.Series.Issue,
		rec.Series.SubIssue1, rec.Series.SubIssue2, rec.Sequence, rec.FullNumber,
		rec.IssueDate, string(rec.Status), rec.OwnerID, rec.ReservedAt,
		rec.ExpiresAt, rec.Annotation,
	)
	if err != nil {
		return nil, postgres.MapError(err, "number_record", rec.FullNumber)
	}

	return rec, nil
}

// Delete removes a number record by primary key. Returns domain.ErrNotFound
// when the record no longer exists (e.g. another run reclaimed it first).
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).
		Exec(ctx, `DELETE FROM number_records WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "number_record", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("number_record %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// seriesEq builds the equality predicate for all five classification fields.
func seriesEq(key domain.SeriesKey) sq.Eq {
	return sq.Eq{
		"region":     key.Region,
		"unit":       key.Unit,
		"issue":      key.Issue,
		"sub_issue1": key.SubIssue1,
		"sub_issue2": key.SubIssue2,
	}
}

func scanRecord(row pgx.Row) (*domain.NumberRecord, error) {
	var rec domain.NumberRecord
	var status string
	err := row.Scan(
		&rec.ID, &rec.Series.Region, &rec.Series.Unit, &rec.Series.Issue,
		&rec.Series.SubIssue1, &rec.Series.SubIssue2, &rec.Sequence, &rec.FullNumber,
		&rec.IssueDate, &status, &rec.OwnerID, &rec.ReservedAt, &rec.ExpiresAt,
		&rec.Annotation,
	)
	if err != nil {
		return nil, err
	}
	rec.Status = domain.NumberStatus(status)
	return &rec, nil
}

func scanRecords(rows pgx.Rows) ([]domain.NumberRecord, error) {
	var records []domain.NumberRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan number_record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate number_records: %w", err)
	}
	return records, nil
}
