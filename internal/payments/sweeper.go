package payments

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/kurier-app/kurier/internal/observability"
)

// SweepStats summarises one sweep run.
type SweepStats struct {
	Skipped bool
	Matched int
	Expired int
	Failed  int
}

// Sweeper reverts expired promotions. It runs on the worker's daily cron
// schedule, never inside a request. Grant and revoke are split on purpose:
// the sweeper only ever flips Promoted -> NotPromoted.
type Sweeper struct {
	repo     Repository
	logger   *slog.Logger
	metrics  *observability.Metrics
	listings ListingInvalidator
	now      func() time.Time

	mu sync.Mutex
}

// NewSweeper constructs a Sweeper. metrics and listings may be nil.
func NewSweeper(repo Repository, logger *slog.Logger, metrics *observability.Metrics, listings ListingInvalidator) *Sweeper {
	return &Sweeper{
		repo:     repo,
		logger:   logger,
		metrics:  metrics,
		listings: listings,
		now:      time.Now,
	}
}

// Handle processes the scheduled expiry task.
func (s *Sweeper) Handle(ctx context.Context, t *asynq.Task) error {
	_, err := s.Sweep(ctx)
	return err
}

// Sweep runs one expiry pass. Ticks arriving while a sweep is still in
// progress are skipped, never run concurrently; the running sweep is left
// to finish. A failure on one row is logged and counted but does not stop
// the remaining rows.
func (s *Sweeper) Sweep(ctx context.Context) (SweepStats, error) {
	if !s.mu.TryLock() {
		if s.logger != nil {
			s.logger.Warn("promotion sweep still running, skipping tick")
		}
		s.metrics.SweepSkipped()
		return SweepStats{Skipped: true}, nil
	}
	defer s.mu.Unlock()

	now := s.now()
	ids, err := s.repo.ListExpired(ctx, now)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("select expired promotions", slog.Any("error", err))
		}
		return SweepStats{}, err
	}

	stats := SweepStats{Matched: len(ids)}
	for _, id := range ids {
		if err := s.repo.ClearPromotion(ctx, id); err != nil {
			if s.logger != nil {
				s.logger.Error("revert promotion", slog.Int64("restaurant_id", id), slog.Any("error", err))
			}
			stats.Failed++
			continue
		}
		stats.Expired++
	}

	s.metrics.SweepCompleted(stats.Expired, stats.Failed)
	if s.logger != nil {
		s.logger.Info("promotion sweep completed",
			slog.Int("matched", stats.Matched),
			slog.Int("expired", stats.Expired),
			slog.Int("failed", stats.Failed),
		)
	}
	if stats.Expired > 0 && s.listings != nil {
		_ = s.listings.Invalidate(ctx)
	}
	return stats, nil
}
