package usecase

import (
	"context"
	"fmt"
	"time"

	"AuthorWatch/internal/ports"
)

// Scheduler wires the interval driver with the pipeline use case.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	source   ports.AuthorSource
}

// NewScheduler returns a helper that repeats full passes over source.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, source ports.AuthorSource) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, source: source}
}

// Run blocks until the driver stops; a failed pass ends the loop with its error.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.pipeline == nil {
		return fmt.Errorf("pipeline is not configured")
	}
	if s.driver == nil {
		return s.pipeline.Run(ctx, s.source)
	}

	job := func(ctx context.Context, trigger time.Time) error {
		s.pipeline.logger.Debug("pass started", "trigger", trigger.Format(time.RFC3339))
		return s.pipeline.Run(ctx, s.source)
	}

	return s.driver.Run(ctx, job)
}
