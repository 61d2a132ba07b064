package domain

import (
	"time"

	"github.com/google/uuid"
)

// PoolRunAudit is one append-only record of a pool generation run outcome.
// Detail carries the per-record allocation summary as free-form JSON.
type PoolRunAudit struct {
	ID        uuid.UUID
	YearMonth string
	Status    string
	Reserved  int
	PoolCount int
	Detail    map[string]any
	CreatedAt time.Time
}
