package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/letterdesk/numbering-backend/internal/domain"
)

// SeedNumber inserts a number record for the given series, sequence, status
// and issue date. Annotation defaults to empty (user-origin); pass
// domain.PoolAnnotation to seed a pool record. Returns the inserted record.
func SeedNumber(t *testing.T, pool *pgxpool.Pool, key domain.SeriesKey, seq int, status domain.NumberStatus, issueDate time.Time, annotation string) domain.NumberRecord {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := domain.NumberRecord{
		ID:         uuid.New(),
		Series:     key,
		Sequence:   seq,
		FullNumber: key.FullNumber(seq),
		IssueDate:  issueDate,
		Status:     status,
		ReservedAt: now,
		ExpiresAt:  now.AddDate(0, 0, 7),
		Annotation: annotation,
	}
	if annotation == "" {
		owner := uuid.New()
		rec.OwnerID = &owner
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO number_records
		     (id, region, unit, issue, sub_issue1, sub_issue2, sequence, full_number,
		      issue_date, status, owner_id, reserved_at, expires_at, annotation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		rec.ID, key.Region, key.Unit, key.Issue, key.SubIssue1, key.SubIssue2,
		rec.Sequence, rec.FullNumber, rec.IssueDate, string(rec.Status),
		rec.OwnerID, rec.ReservedAt, rec.ExpiresAt, rec.Annotation,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNumber insert: %v", err)
	}

	return rec
}

// SeedSchedule inserts a pool schedule row for the given month.
func SeedSchedule(t *testing.T, pool *pgxpool.Pool, yearMonth string, days [3]int) domain.PoolSchedule {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO pool_schedules (year_month, day1, day2, day3) VALUES ($1, $2, $3, $4)`,
		yearMonth, days[0], days[1], days[2],
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSchedule insert: %v", err)
	}

	return domain.PoolSchedule{YearMonth: yearMonth, Days: days}
}

// SetLock puts the singleton lock row into the given state.
func SetLock(t *testing.T, pool *pgxpool.Pool, locked bool, holderName string, lockedAt *time.Time) {
	t.Helper()

	var holderID *uuid.UUID
	var name *string
	if locked {
		id := uuid.New()
		holderID = &id
		name = &holderName
	}

	_, err := pool.Exec(context.Background(),
		`UPDATE allocation_locks SET locked = $1, holder_id = $2, holder_name = $3, locked_at = $4 WHERE id = $5`,
		locked, holderID, name, lockedAt, domain.AllocationLockID,
	)
	if err != nil {
		t.Fatalf("testhelper: SetLock update: %v", err)
	}
}

// ResetTables clears mutable state between tests. The allocation_locks row is
// reset, not deleted.
func ResetTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	for _, stmt := range []string{
		`DELETE FROM number_records`,
		`DELETE FROM pool_schedules`,
		`DELETE FROM pool_run_audit`,
		`UPDATE allocation_locks SET locked = FALSE, holder_id = NULL, holder_name = NULL, locked_at = NULL`,
	} {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("testhelper: ResetTables %q: %v", stmt, err)
		}
	}
}
