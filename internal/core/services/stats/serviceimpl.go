package stats

import (
	"context"
	"fmt"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/static/errs"
)

var _ IStatsService = (*StatsService)(nil)

const (
	defaultHistoryLimit     = 20
	maxHistoryLimit         = 100
	defaultLeaderboardLimit = 20
)

// StatsService implements the IStatsService interface
type StatsService struct {
	submissions secondary.SubmissionRepository
	logger      primary.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(submissions secondary.SubmissionRepository, logger primary.Logger) *StatsService {
	return &StatsService{
		submissions: submissions,
		logger:      logger,
	}
}

// GetUserStats returns the aggregate record for one learner. Accuracy
// is derived here so the repository stays a plain aggregator.
func (s *StatsService) GetUserStats(ctx context.Context, userName string) (*domain.UserStats, error) {
	stats, err := s.submissions.GetUserStats(ctx, userName)
	if err != nil {
		s.logger.Error("Failed to load user stats", "userName", userName, "error", err)
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}
	if stats.TotalSubmissions > 0 {
		stats.AccuracyPercent = float64(stats.CorrectCount) / float64(stats.TotalSubmissions) * 100
	}
	return stats, nil
}

// GetHistory lists recent attempts, newest first. The limit is clamped
// so one request cannot drag the whole table across the wire.
func (s *StatsService) GetHistory(ctx context.Context, userName string, limit int, category *domain.Category) ([]domain.SubmissionHistory, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if category != nil && !category.Valid() {
		return nil, errs.InvalidCategory
	}

	history, err := s.submissions.GetHistory(ctx, userName, limit, category)
	if err != nil {
		s.logger.Error("Failed to load submission history", "userName", userName, "error", err)
		return nil, fmt.Errorf("failed to load submission history: %w", err)
	}
	return history, nil
}

// GetLeaderboard returns the ranked board. Rank and level come back
// already assigned by the repository.
func (s *StatsService) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	board, err := s.submissions.GetLeaderboard(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to load leaderboard", "error", err)
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return board, nil
}
