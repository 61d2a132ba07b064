package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/letterdesk/numbering-backend/internal/domain"
)

// combination is one numbering series and its current high-water mark.
type combination struct {
	Key     domain.SeriesKey
	Highest int
}

// resolveCombinations groups the month's non-pool records by series and keeps
// the highest sequence per series. Confirmed records are preferred; a month
// with none yet falls back to any status so the pool can still borrow the
// existing numbering pattern. An empty month resolves to an empty slice, not
// an error.
func (s *Service) resolveCombinations(ctx context.Context, from, to time.Time) ([]combination, error) {
	confirmed := domain.StatusConfirmed
	records, err := s.numbers.ListMonth(ctx, from, to, &confirmed)
	if err != nil {
		return nil, fmt.Errorf("list confirmed records: %w", err)
	}
	if len(records) == 0 {
		records, err = s.numbers.ListMonth(ctx, from, to, nil)
		if err != nil {
			return nil, fmt.Errorf("list records any status: %w", err)
		}
	}

	highest := make(map[domain.SeriesKey]int, len(records))
	order := make([]domain.SeriesKey, 0, len(records))
	for _, rec := range records {
		seen, ok := highest[rec.Series]
		if !ok {
			order = append(order, rec.Series)
		}
		// Rows arrive sequence-descending, but the max is still compared
		// explicitly rather than assumed from ordering.
		if !ok || rec.Sequence > seen {
			highest[rec.Series] = rec.Sequence
		}
	}

	combos := make([]combination, 0, len(order))
	for _, key := range order {
		combos = append(combos, combination{Key: key, Highest: highest[key]})
	}

	return combos, nil
}
