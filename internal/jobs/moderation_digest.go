// Package jobs runs scheduled background work.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"estately/internal/middleware"
	"estately/internal/observability"

	"github.com/robfig/cron/v3"
)

// PendingCounter reports the moderation backlog.
type PendingCounter interface {
	PendingCount(ctx context.Context) (int64, error)
}

// ModerationDigest publishes the number of listings awaiting review.
// It only observes; listings never change state on a timer.
type ModerationDigest struct {
	counter PendingCounter
	timeout time.Duration
}

func NewModerationDigest(counter PendingCounter) *ModerationDigest {
	return &ModerationDigest{counter: counter, timeout: 30 * time.Second}
}

// Run counts pending listings once, updates the gauge and logs the backlog.
func (d *ModerationDigest) Run(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	pending, err := d.counter.PendingCount(ctx)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "moderation digest failed", slog.String("error", err.Error()))
		return 0, err
	}

	observability.PendingProperties.Set(float64(pending))
	if pending > 0 {
		middleware.Logger.InfoContext(ctx, "moderation backlog", slog.Int64("pending", pending))
	}
	return pending, nil
}

// Scheduler wraps a cron runner so callers can stop it during shutdown.
type Scheduler struct {
	cron *cron.Cron
}

// StartModerationDigest schedules digest.Run on spec (standard cron syntax or
// descriptors such as "@every 15m") and runs it once immediately.
func StartModerationDigest(spec string, digest *ModerationDigest) (*Scheduler, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		_, _ = digest.Run(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid moderation digest schedule %q: %w", spec, err)
	}
	c.Start()

	go func() { _, _ = digest.Run(context.Background()) }()
	return &Scheduler{cron: c}, nil
}

// Stop halts scheduling and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
