package config

import (
	"fmt"

	"github.com/google/uuid"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Pool.validate(); err != nil {
		return fmt.Errorf("pool: %w", err)
	}

	if _, err := c.Time.Location(); err != nil {
		return fmt.Errorf("time: resolve zone %q: %w", c.Time.Zone, err)
	}

	return nil
}

func (p *PoolConfig) validate() error {
	if p.TargetSize <= 0 {
		return fmt.Errorf("target_size must be > 0 (got %d)", p.TargetSize)
	}
	if p.LockStaleAfter <= 0 {
		return fmt.Errorf("lock_stale_after must be > 0 (got %v)", p.LockStaleAfter)
	}
	if p.LockRetryAfter <= 0 {
		return fmt.Errorf("lock_retry_after must be > 0 (got %v)", p.LockRetryAfter)
	}
	if p.ReservationExpiryYears <= 0 {
		return fmt.Errorf("reservation_expiry_years must be > 0 (got %d)", p.ReservationExpiryYears)
	}
	if _, err := uuid.Parse(p.RunnerID); err != nil {
		return fmt.Errorf("runner_id must be a UUID: %w", err)
	}
	if p.RunnerName == "" {
		return fmt.Errorf("runner_name must not be empty")
	}
	return nil
}
