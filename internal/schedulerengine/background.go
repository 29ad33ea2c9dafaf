package schedulerengine

import (
	"context"
	"time"

	"github.com/KnellBalm/Offline-Lab/internal/config"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/problemset"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

// SchedulerEngine drives the two daily background duties: generating
// the day's problem sets at the configured hour and pruning expired
// problem files and expected_* tables.
type SchedulerEngine struct {
	SchedulerCfg   *config.SchedulerConfig
	problemService problemset.IProblemSetService
	store          secondary.ProblemStore
	retention      secondary.RetentionPort
	logger         primary.Logger

	lastRunDay string
}

func NewSchedulerEngine(
	SchedulerCfg *config.SchedulerConfig,
	problemService problemset.IProblemSetService,
	store secondary.ProblemStore,
	retention secondary.RetentionPort,
	logger primary.Logger,
) *SchedulerEngine {
	return &SchedulerEngine{
		SchedulerCfg:   SchedulerCfg,
		problemService: problemService,
		store:          store,
		retention:      retention,
		logger:         logger,
	}
}

// Start ticks until the context is cancelled. Each tick fires at most
// one daily run; the run hour is compared in UTC.
func (s *SchedulerEngine) Start(ctx context.Context) {
	ticker := time.NewTicker(s.SchedulerCfg.CheckInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := time.Now().UTC()
				if !s.shouldRun(now) {
					continue
				}
				s.lastRunDay = now.Format("2006-01-02")
				s.RunDaily(ctx, now)
			}
		}
	}()
}

// shouldRun reports whether the daily run is due: the run hour has
// been reached and today's run has not happened yet.
func (s *SchedulerEngine) shouldRun(now time.Time) bool {
	if now.Hour() < s.SchedulerCfg.RunHourUTC {
		return false
	}
	return s.lastRunDay != now.Format("2006-01-02")
}

// RunDaily generates any missing problem sets for the day, then prunes
// everything older than the retention window. Failures are logged per
// category so one broken track cannot block the other.
func (s *SchedulerEngine) RunDaily(ctx context.Context, day time.Time) {
	for _, category := range []domain.Category{domain.CategoryPA, domain.CategoryStream} {
		created, err := s.problemService.EnsureDaily(ctx, category, day)
		if err != nil {
			s.logger.Error("Daily generation failed", "category", category, "error", err)
			continue
		}
		if created {
			s.logger.Info("Daily problem set ready", "category", category, "date", day.Format("2006-01-02"))
		}
	}

	s.cleanup(ctx, day)
}

func (s *SchedulerEngine) cleanup(ctx context.Context, now time.Time) {
	cutoff := now.AddDate(0, 0, -s.SchedulerCfg.RetentionDays)

	deleted, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to prune problem files", "error", err)
	} else if deleted > 0 {
		s.logger.Info("Pruned problem files", "count", deleted, "cutoff", cutoff.Format("2006-01-02"))
	}

	dropped, err := s.retention.DropExpectedTablesBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to drop expired expected tables", "error", err)
	} else if dropped > 0 {
		s.logger.Info("Dropped expired expected tables", "count", dropped, "cutoff", cutoff.Format("2006-01-02"))
	}
}
