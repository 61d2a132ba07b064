package domain

import (
	"time"

	"github.com/google/uuid"
)

// AllocationLockID is the primary key of the single lock row guarding pool
// generation. The row is created by migration, never inserted at runtime.
const AllocationLockID = 1

// AllocationLock is the mutual-exclusion record for pool generation runs.
// Holder fields are nil while the lock is free.
type AllocationLock struct {
	ID         int
	Locked     bool
	HolderID   *uuid.UUID
	HolderName *string
	LockedAt   *time.Time
}

// IsStale reports whether the lock is held but its holder has exceeded the
// staleness threshold without releasing, and is presumed crashed.
func (l AllocationLock) IsStale(now time.Time, threshold time.Duration) bool {
	if !l.Locked || l.LockedAt == nil {
		return false
	}
	return now.Sub(*l.LockedAt) > threshold
}
