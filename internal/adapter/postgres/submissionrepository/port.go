// package submissionrepository contains the PostgreSQL persistence for
// graded attempts
package submissionrepository

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	querybuilder "github.com/KnellBalm/Offline-Lab/internal/utils"
)

var _ secondary.SubmissionRepository = (*submissionRepo)(nil)

type submissionRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// New creates a new PostgreSQL submission repository
func New(db *sqlx.DB, logger primary.Logger) secondary.SubmissionRepository {
	return &submissionRepo{
		db:     db,
		logger: logger,
		schema: os.Getenv("DB_SCHEMA"),
	}
}

// Record stores one graded attempt.
func (r *submissionRepo) Record(ctx context.Context, rec *domain.SubmissionRecord) error {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(
			tbl.SessionDate, tbl.ProblemID, tbl.Category, tbl.SQLText,
			tbl.IsCorrect, tbl.Feedback, tbl.UserName, tbl.SubmittedAt,
		).
		Into(tbl.TableName()).
		Values(
			rec.SessionDate, rec.ProblemID, rec.Category, rec.SQLText,
			rec.IsCorrect, rec.Feedback, rec.UserName, rec.SubmittedAt,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to save submission", "problemId", rec.ProblemID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// GetUserStats aggregates one learner's attempts. An empty userName
// aggregates over every submission, matching the single-user dashboard
// mode.
func (r *submissionRepo) GetUserStats(ctx context.Context, userName string) (*domain.UserStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_submissions,
			COUNT(*) FILTER (WHERE is_correct) AS correct_count,
			COUNT(DISTINCT session_date) FILTER (WHERE is_correct) AS solved_days
		FROM submissions
		WHERE ($1 = '' OR user_name = $1)
	`

	var stats domain.UserStats
	if err := r.db.GetContext(ctx, &stats, query, userName); err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	if stats.TotalSubmissions > 0 {
		stats.AccuracyPercent = float64(stats.CorrectCount) / float64(stats.TotalSubmissions) * 100
	}
	return &stats, nil
}

// GetHistory lists the most recent attempts, optionally filtered by
// category.
func (r *submissionRepo) GetHistory(ctx context.Context, userName string, limit int, category *domain.Category) ([]domain.SubmissionHistory, error) {
	tbl := domain.GetSubmissionTable()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.SessionDate, tbl.ProblemID, tbl.Category, tbl.IsCorrect, tbl.Feedback, tbl.SubmittedAt).
		From(tbl.TableName()).
		OrderBy(tbl.SubmittedAt, false).
		Limit(limit)
	if userName != "" {
		qb = qb.Where(fmt.Sprintf("%s = ?", tbl.UserName), userName)
	}
	if category != nil {
		qb = qb.And(fmt.Sprintf("%s = ?", tbl.Category), *category)
	}

	query, args := qb.Build()
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var history []domain.SubmissionHistory
	if err := r.db.SelectContext(ctx, &history, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get submission history: %w", err)
	}
	return history, nil
}

// GetLeaderboard ranks learners by correct answers, then streak days.
func (r *submissionRepo) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		WITH user_stats AS (
			SELECT
				u.id,
				COALESCE(u.nickname, u.user_name) AS nickname,
				COUNT(DISTINCT CASE WHEN s.is_correct THEN s.session_date END) AS streak,
				COUNT(CASE WHEN s.is_correct THEN 1 END) AS correct
			FROM users u
			LEFT JOIN submissions s ON s.user_name = u.user_name
			GROUP BY u.id, u.nickname, u.user_name
		)
		SELECT nickname, correct, streak
		FROM user_stats
		WHERE correct > 0
		ORDER BY correct DESC, streak DESC
		LIMIT $1
	`

	var entries []domain.LeaderboardEntry
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Level = domain.LevelForCorrectCount(entries[i].Correct)
	}
	return entries, nil
}
