package scheduler

import (
	"context"
	"time"

	"AuthorWatch/internal/ports"
)

// IntervalScheduler runs a job immediately and then once per interval.
// A zero interval runs the job a single time.
type IntervalScheduler struct {
	interval time.Duration
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler ticking every interval.
func NewIntervalScheduler(interval time.Duration) *IntervalScheduler {
	return &IntervalScheduler{interval: interval}
}

// Run blocks until the context is cancelled or the job returns an error.
func (s *IntervalScheduler) Run(ctx context.Context, job func(context.Context, time.Time) error) error {
	if job == nil {
		return nil
	}

	if err := job(ctx, time.Now()); err != nil {
		return err
	}
	if s.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case t := <-ticker.C:
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := job(ctx, t); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
