package worker

import (
	"context"
	"time"

	"github.com/gymdesk/gymdesk-backend/internal/clock"
	"github.com/gymdesk/gymdesk-backend/internal/repository"
	"github.com/rs/zerolog"
)

// RetentionWorker purges enrollment ledger rows for occurrences older than
// the configured retention period. Stale rows are never relabeled to a new
// occurrence, so once their date is past there is nothing left to read
// from them but history.
type RetentionWorker struct {
	ledger        *repository.EnrollmentRepository
	clk           clock.Clock
	retentionDays int
	interval      time.Duration
	log           zerolog.Logger
}

// NewRetentionWorker creates a new RetentionWorker sweeping once per hour.
func NewRetentionWorker(ledger *repository.EnrollmentRepository, clk clock.Clock, retentionDays int, log zerolog.Logger) *RetentionWorker {
	return &RetentionWorker{
		ledger:        ledger,
		clk:           clk,
		retentionDays: retentionDays,
		interval:      time.Hour,
		log:           log.With().Str("component", "retention_worker").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine; returns when ctx ends.
func (w *RetentionWorker) Start(ctx context.Context) {
	w.log.Info().Int("retention_days", w.retentionDays).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// First sweep right away so a long-stopped instance catches up.
	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RetentionWorker) sweep(ctx context.Context) {
	now := w.clk.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -w.retentionDays)

	removed, err := w.ledger.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Sweep failed")
		}
		return
	}

	if removed > 0 {
		w.log.Info().Int64("rows", removed).Str("cutoff", cutoff.Format("2006-01-02")).Msg("Purged stale enrollments")
	}
}
