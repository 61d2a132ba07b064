package allocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/letterdesk/numbering-backend/internal/domain"
)

// allocateOne places one pool record for a series: it reclaims the highest
// cancelled sequence below the high-water mark when one exists, otherwise
// mints highest+1. Both the reuse candidate and the highest+1 come from a
// snapshot read; the allocation lock is what keeps concurrent runs from
// racing past them.
func (s *Service) allocateOne(ctx context.Context, combo combination, issueDate, now time.Time) (*AllocatedNumber, error) {
	sequence := combo.Highest + 1
	reused := false

	reusable, err := s.numbers.FindReusableCancelled(ctx, combo.Key, combo.Highest)
	switch {
	case err == nil:
		sequence = reusable.Sequence
		reused = true
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("find reusable for %s: %w", combo.Key.FullNumber(combo.Highest), err)
	}

	rec := &domain.NumberRecord{
		ID:         uuid.New(),
		Series:     combo.Key,
		Sequence:   sequence,
		FullNumber: combo.Key.FullNumber(sequence),
		IssueDate:  issueDate,
		Status:     domain.StatusReserved,
		OwnerID:    nil,
		ReservedAt: now,
		ExpiresAt:  now.AddDate(s.cfg.ReservationExpiryYears, 0, 0),
		Annotation: domain.PoolAnnotation,
	}

	if reused {
		// The cancelled row and its pool replacement swap in one transaction.
		err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
			if err := s.numbers.Delete(ctx, reusable.ID); err != nil {
				return fmt.Errorf("reclaim cancelled %s: %w", reusable.FullNumber, err)
			}
			_, err := s.numbers.Create(ctx, rec)
			return err
		})
	} else {
		_, err = s.numbers.Create(ctx, rec)
	}
	if err != nil {
		return nil, fmt.Errorf("insert pool record %s: %w", rec.FullNumber, err)
	}

	s.log.InfoContext(ctx, "pool record allocated",
		slog.String("full_number", rec.FullNumber),
		slog.Int("sequence", sequence),
		slog.Bool("reused", reused),
	)

	return &AllocatedNumber{
		Series:     combo.Key,
		Sequence:   sequence,
		FullNumber: rec.FullNumber,
		Reused:     reused,
	}, nil
}
