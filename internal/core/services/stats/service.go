package stats

import (
	"context"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

// IStatsService exposes the read side of the submission record.
type IStatsService interface {
	GetUserStats(ctx context.Context, userName string) (*domain.UserStats, error)
	GetHistory(ctx context.Context, userName string, limit int, category *domain.Category) ([]domain.SubmissionHistory, error)
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
