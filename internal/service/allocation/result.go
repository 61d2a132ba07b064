package allocation

import "github.com/letterdesk/numbering-backend/internal/domain"

// Status classifies how a pool generation run ended. Every status except a
// hard store failure is a successful run from the caller's point of view.
type Status string

const (
	// StatusNotScheduled means today is not one of the month's drawn days and
	// the run was not forced. No side effects.
	StatusNotScheduled Status = "not_scheduled"
	// StatusPoolComplete means the month's pool already meets the target.
	StatusPoolComplete Status = "pool_complete"
	// StatusNoCombinations means the month has no numbering series to borrow
	// a pattern from; nothing to allocate.
	StatusNoCombinations Status = "no_combinations"
	// StatusDeferred means another holder kept the allocation lock through
	// the backoff; the run allocated nothing and should retry next cycle.
	StatusDeferred Status = "deferred"
	// StatusAllocated means the allocation loop ran; Reserved reports how
	// many records it actually placed.
	StatusAllocated Status = "allocated"
)

// RunInput selects the month to top up. YearMonth defaults to the current
// month in the configured local zone; Force skips the schedule-day check.
type RunInput struct {
	YearMonth string
	Force     bool
}

// AllocatedNumber is one record placed into the pool by a run.
type AllocatedNumber struct {
	Series     domain.SeriesKey
	Sequence   int
	FullNumber string
	Reused     bool
}

// RunResult summarizes one pool generation run.
type RunResult struct {
	Status        Status
	YearMonth     string
	Today         int
	ScheduledDays [3]int
	Reserved      int
	PoolCount     int
	Records       []AllocatedNumber
}
