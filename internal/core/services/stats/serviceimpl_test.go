package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/static/errs"
)

type mockRepo struct {
	stats        *domain.UserStats
	statsErr     error
	history      []domain.SubmissionHistory
	historyErr   error
	historyLimit int
	board        []domain.LeaderboardEntry
	boardErr     error
	boardLimit   int
}

func (m *mockRepo) Record(ctx context.Context, rec *domain.SubmissionRecord) error { return nil }

func (m *mockRepo) GetUserStats(ctx context.Context, userName string) (*domain.UserStats, error) {
	return m.stats, m.statsErr
}

func (m *mockRepo) GetHistory(ctx context.Context, userName string, limit int, category *domain.Category) ([]domain.SubmissionHistory, error) {
	m.historyLimit = limit
	return m.history, m.historyErr
}

func (m *mockRepo) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	m.boardLimit = limit
	return m.board, m.boardErr
}

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func TestGetUserStatsDerivesAccuracy(t *testing.T) {
	repo := &mockRepo{stats: &domain.UserStats{TotalSubmissions: 8, CorrectCount: 6, SolvedDays: 3}}
	svc := NewStatsService(repo, nopLogger{})

	stats, err := svc.GetUserStats(context.Background(), "mina")
	require.NoError(t, err)
	assert.InDelta(t, 75.0, stats.AccuracyPercent, 0.001)
}

func TestGetUserStatsZeroSubmissions(t *testing.T) {
	repo := &mockRepo{stats: &domain.UserStats{}}
	svc := NewStatsService(repo, nopLogger{})

	stats, err := svc.GetUserStats(context.Background(), "mina")
	require.NoError(t, err)
	assert.Zero(t, stats.AccuracyPercent)
}

func TestGetUserStatsRepositoryFailure(t *testing.T) {
	repo := &mockRepo{statsErr: errors.New("connection refused")}
	svc := NewStatsService(repo, nopLogger{})

	_, err := svc.GetUserStats(context.Background(), "mina")
	assert.Error(t, err)
}

func TestGetHistoryClampsLimit(t *testing.T) {
	repo := &mockRepo{}
	svc := NewStatsService(repo, nopLogger{})

	_, err := svc.GetHistory(context.Background(), "mina", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultHistoryLimit, repo.historyLimit)

	_, err = svc.GetHistory(context.Background(), "mina", 5000, nil)
	require.NoError(t, err)
	assert.Equal(t, maxHistoryLimit, repo.historyLimit)
}

func TestGetHistoryRejectsUnknownCategory(t *testing.T) {
	svc := NewStatsService(&mockRepo{}, nopLogger{})

	bogus := domain.Category("bogus")
	_, err := svc.GetHistory(context.Background(), "mina", 10, &bogus)
	assert.ErrorIs(t, err, errs.InvalidCategory)
}

func TestGetLeaderboardDefaultLimit(t *testing.T) {
	repo := &mockRepo{board: []domain.LeaderboardEntry{{Nickname: "mina", Correct: 12}}}
	svc := NewStatsService(repo, nopLogger{})

	board, err := svc.GetLeaderboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, defaultLeaderboardLimit, repo.boardLimit)
	assert.Len(t, board, 1)
}
