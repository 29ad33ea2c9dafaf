package problemset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/static/errs"
)

type mockStore struct {
	sets      map[string]*domain.ProblemSet
	loadErr   error
	saveErr   error
	saveCalls int
}

func (m *mockStore) FindProblem(ctx context.Context, problemID string, category domain.Category, asOf time.Time) (*domain.Problem, error) {
	return nil, nil
}

func (m *mockStore) LoadDaily(ctx context.Context, category domain.Category, day time.Time) (*domain.ProblemSet, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.sets[string(category)+day.Format("2006-01-02")], nil
}

func (m *mockStore) SaveDaily(ctx context.Context, set *domain.ProblemSet) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.sets == nil {
		m.sets = map[string]*domain.ProblemSet{}
	}
	m.sets[string(set.Category)+set.Date.Format("2006-01-02")] = set
	return nil
}

func (m *mockStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}

type mockCache struct {
	set    *domain.ProblemSet
	getErr error
	putErr error
	puts   int
}

func (m *mockCache) GetDaily(ctx context.Context, category domain.Category, day time.Time) (*domain.ProblemSet, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.set, nil
}

func (m *mockCache) PutDaily(ctx context.Context, set *domain.ProblemSet) error {
	m.puts++
	return m.putErr
}

type mockGenerator struct {
	problems []domain.Problem
	err      error
	calls    int
}

func (m *mockGenerator) GenerateProblems(ctx context.Context, category domain.Category, count int) ([]domain.Problem, error) {
	m.calls++
	return m.problems, m.err
}

func (m *mockGenerator) Hint(ctx context.Context, problem *domain.Problem, userSQL string) (string, error) {
	return "", nil
}

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func genProblems(n int) []domain.Problem {
	out := make([]domain.Problem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Problem{
			ProblemID:  string(rune('a' + i)),
			Title:      "t",
			Difficulty: domain.DifficultyEasy,
			Question:   "q",
			AnswerSQL:  "SELECT 1",
		})
	}
	return out
}

func TestGetTodayPrefersCache(t *testing.T) {
	cached := &domain.ProblemSet{Category: domain.CategoryPA, Problems: genProblems(2)}
	store := &mockStore{loadErr: errors.New("store must not be hit")}
	svc := NewProblemSetService(store, &mockCache{set: cached}, &mockGenerator{}, 6, nopLogger{})

	set, err := svc.GetToday(context.Background(), domain.CategoryPA)
	require.NoError(t, err)
	assert.Same(t, cached, set)
}

func TestGetTodayFallsBackToStoreAndFillsCache(t *testing.T) {
	now := time.Now()
	stored := &domain.ProblemSet{Date: now, Category: domain.CategoryPA, Problems: genProblems(1)}
	store := &mockStore{sets: map[string]*domain.ProblemSet{
		string(domain.CategoryPA) + now.Format("2006-01-02"): stored,
	}}
	cache := &mockCache{getErr: errors.New("redis down")}
	svc := NewProblemSetService(store, cache, &mockGenerator{}, 6, nopLogger{})

	set, err := svc.GetToday(context.Background(), domain.CategoryPA)
	require.NoError(t, err)
	assert.Same(t, stored, set)
	assert.Equal(t, 1, cache.puts)
}

func TestGetTodayMissingSet(t *testing.T) {
	svc := NewProblemSetService(&mockStore{}, &mockCache{}, &mockGenerator{}, 6, nopLogger{})

	_, err := svc.GetToday(context.Background(), domain.CategoryStream)
	assert.ErrorIs(t, err, errs.ProblemSetMissing)
}

func TestGetTodayRejectsUnknownCategory(t *testing.T) {
	svc := NewProblemSetService(&mockStore{}, &mockCache{}, &mockGenerator{}, 6, nopLogger{})

	_, err := svc.GetToday(context.Background(), domain.Category("bogus"))
	assert.ErrorIs(t, err, errs.InvalidCategory)
}

func TestEnsureDailySkipsExistingSet(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &mockStore{sets: map[string]*domain.ProblemSet{
		string(domain.CategoryPA) + "2026-03-01": {Date: day, Category: domain.CategoryPA},
	}}
	gen := &mockGenerator{}
	svc := NewProblemSetService(store, &mockCache{}, gen, 6, nopLogger{})

	created, err := svc.EnsureDaily(context.Background(), domain.CategoryPA, day)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, gen.calls)
}

func TestEnsureDailyGeneratesAndStores(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &mockStore{}
	cache := &mockCache{}
	gen := &mockGenerator{problems: genProblems(6)}
	svc := NewProblemSetService(store, cache, gen, 6, nopLogger{})

	created, err := svc.EnsureDaily(context.Background(), domain.CategoryPA, day)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, store.saveCalls)
	assert.Equal(t, 1, cache.puts)

	saved := store.sets[string(domain.CategoryPA)+"2026-03-01"]
	require.NotNil(t, saved)
	assert.Len(t, saved.Problems, 6)
	for _, p := range saved.Problems {
		assert.Equal(t, domain.CategoryPA, p.Category)
	}
}

func TestEnsureDailyGeneratorFailure(t *testing.T) {
	gen := &mockGenerator{err: errors.New("quota exceeded")}
	svc := NewProblemSetService(&mockStore{}, &mockCache{}, gen, 6, nopLogger{})

	_, err := svc.EnsureDaily(context.Background(), domain.CategoryPA, time.Now())
	assert.ErrorIs(t, err, errs.GenerationFailed)
}

func TestEnsureDailyEmptyGeneration(t *testing.T) {
	svc := NewProblemSetService(&mockStore{}, &mockCache{}, &mockGenerator{}, 6, nopLogger{})

	_, err := svc.EnsureDaily(context.Background(), domain.CategoryPA, time.Now())
	assert.ErrorIs(t, err, errs.EmptyGeneration)
}

func TestNormalizeProblemsDifficulty(t *testing.T) {
	in := []domain.Problem{
		{ProblemID: "p1", Question: "q", AnswerSQL: "SELECT 1", Difficulty: "advanced"},
		{ProblemID: "p2", Question: "q", AnswerSQL: "SELECT 1", Difficulty: "???"},
		{ProblemID: "p3", Question: "q", AnswerSQL: "SELECT 1", Difficulty: domain.DifficultyHard},
	}

	out, err := normalizeProblems(in, domain.CategoryStream)
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyHard, out[0].Difficulty)
	assert.Equal(t, domain.DifficultyMedium, out[1].Difficulty)
	assert.Equal(t, domain.DifficultyHard, out[2].Difficulty)
}

func TestNormalizeProblemsRequiresAnswerSQL(t *testing.T) {
	in := []domain.Problem{{ProblemID: "p1", Question: "q"}}

	_, err := normalizeProblems(in, domain.CategoryPA)
	assert.ErrorIs(t, err, errs.AnswerSQLRequired)
}
