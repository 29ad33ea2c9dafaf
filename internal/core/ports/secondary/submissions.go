package secondary

import (
	"context"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

// SubmissionRepository persists graded attempts and answers the stats
// queries built on top of them.
type SubmissionRepository interface {
	// Record stores one graded attempt. Grading treats a failure here
	// as best-effort bookkeeping; it must never block a verdict.
	Record(ctx context.Context, rec *domain.SubmissionRecord) error

	GetUserStats(ctx context.Context, userName string) (*domain.UserStats, error)
	GetHistory(ctx context.Context, userName string, limit int, category *domain.Category) ([]domain.SubmissionHistory, error)
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
