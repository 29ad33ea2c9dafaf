package practice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/static/errs"
)

type mockRunner struct {
	results map[string]*domain.TabularResult
	errs    map[string]error
	calls   []string
}

func (m *mockRunner) RunQuery(ctx context.Context, sqlText string) (*domain.TabularResult, error) {
	m.calls = append(m.calls, sqlText)
	if err, ok := m.errs[sqlText]; ok {
		return nil, err
	}
	if res, ok := m.results[sqlText]; ok {
		return res, nil
	}
	return &domain.TabularResult{Columns: []string{}, Rows: []domain.Row{}}, nil
}

type mockGenerator struct {
	problems []domain.Problem
	err      error
}

func (m *mockGenerator) GenerateProblems(ctx context.Context, category domain.Category, n int) ([]domain.Problem, error) {
	return m.problems, m.err
}

func (m *mockGenerator) Hint(ctx context.Context, problem *domain.Problem, submittedSQL string) (string, error) {
	return "", nil
}

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func result(columns []string, rows ...domain.Row) *domain.TabularResult {
	return &domain.TabularResult{Columns: columns, Rows: rows}
}

func TestGeneratePracticeAssignsPracticeID(t *testing.T) {
	gen := &mockGenerator{problems: []domain.Problem{{
		ProblemID:  "day-3",
		Title:      "Joins",
		Difficulty: domain.DifficultyMedium,
		Question:   "q",
		AnswerSQL:  "SELECT 1",
	}}}
	svc := NewPracticeService(&mockRunner{}, gen, nopLogger{})

	problem, err := svc.GeneratePractice(context.Background(), domain.CategoryPA)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(problem.ProblemID, "practice_"))
	assert.Len(t, problem.ProblemID, len("practice_")+8)
	assert.Equal(t, domain.CategoryPA, problem.Category)
}

func TestGeneratePracticeGeneratorFailure(t *testing.T) {
	gen := &mockGenerator{err: errors.New("model unavailable")}
	svc := NewPracticeService(&mockRunner{}, gen, nopLogger{})

	_, err := svc.GeneratePractice(context.Background(), domain.CategoryPA)
	assert.ErrorIs(t, err, errs.GenerationFailed)
}

func TestGeneratePracticeRejectsMissingAnswer(t *testing.T) {
	gen := &mockGenerator{problems: []domain.Problem{{ProblemID: "x", Question: "q"}}}
	svc := NewPracticeService(&mockRunner{}, gen, nopLogger{})

	_, err := svc.GeneratePractice(context.Background(), domain.CategoryPA)
	assert.ErrorIs(t, err, errs.AnswerSQLRequired)
}

func TestSubmitPracticeCorrectScoresByDifficulty(t *testing.T) {
	runner := &mockRunner{results: map[string]*domain.TabularResult{
		"SELECT a": result([]string{"a"}, domain.Row{"a": int64(1)}),
		"SELECT A": result([]string{"A"}, domain.Row{"A": int64(1)}),
	}}
	svc := NewPracticeService(runner, &mockGenerator{}, nopLogger{})

	res, err := svc.SubmitPractice(context.Background(), "SELECT a", "SELECT A", domain.DifficultyHard)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 50, res.Score)
}

func TestSubmitPracticeIncorrectScoresZero(t *testing.T) {
	runner := &mockRunner{results: map[string]*domain.TabularResult{
		"SELECT 1": result([]string{"n"}, domain.Row{"n": int64(1)}),
		"SELECT 2": result([]string{"n"}, domain.Row{"n": int64(2)}),
	}}
	svc := NewPracticeService(runner, &mockGenerator{}, nopLogger{})

	res, err := svc.SubmitPractice(context.Background(), "SELECT 1", "SELECT 2", domain.DifficultyEasy)
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Zero(t, res.Score)
}

func TestSubmitPracticeReferenceFailureIsSystemFault(t *testing.T) {
	runner := &mockRunner{errs: map[string]error{
		"SELECT broken": errors.New("relation does not exist"),
	}}
	svc := NewPracticeService(runner, &mockGenerator{}, nopLogger{})

	res, err := svc.SubmitPractice(context.Background(), "SELECT 1", "SELECT broken", domain.DifficultyEasy)
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Contains(t, res.Feedback, "Grading system error")
	assert.NotContains(t, res.Feedback, "relation does not exist")
	// The learner's query is never run when the reference is broken.
	assert.Equal(t, []string{"SELECT broken"}, runner.calls)
}

func TestSubmitPracticeUserQueryFailure(t *testing.T) {
	runner := &mockRunner{
		results: map[string]*domain.TabularResult{
			"SELECT 1": result([]string{"n"}, domain.Row{"n": int64(1)}),
		},
		errs: map[string]error{
			"SELEC oops": errors.New("syntax error at or near \"SELEC\""),
		},
	}
	svc := NewPracticeService(runner, &mockGenerator{}, nopLogger{})

	res, err := svc.SubmitPractice(context.Background(), "SELEC oops", "SELECT 1", domain.DifficultyEasy)
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Contains(t, res.Feedback, "SQL execution error")
	assert.Contains(t, res.Feedback, "syntax error")
}

func TestSubmitPracticeValidation(t *testing.T) {
	svc := NewPracticeService(&mockRunner{}, &mockGenerator{}, nopLogger{})

	_, err := svc.SubmitPractice(context.Background(), "", "SELECT 1", domain.DifficultyEasy)
	assert.ErrorIs(t, err, errs.SubmittedSQLNeeded)

	_, err = svc.SubmitPractice(context.Background(), "SELECT 1", "", domain.DifficultyEasy)
	assert.ErrorIs(t, err, errs.AnswerSQLRequired)
}
