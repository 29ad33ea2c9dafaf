package practice

import (
	"context"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

// PracticeResult is the graded outcome of a self-contained practice
// attempt. Practice rounds are ephemeral so the reference query travels
// with the submission instead of being looked up.
type PracticeResult struct {
	IsCorrect bool    `json:"is_correct"`
	Score     int     `json:"score"`
	Feedback  string  `json:"feedback"`
	ElapsedMs float64 `json:"execution_time_ms"`
}

// IPracticeService generates and grades on-demand practice problems.
type IPracticeService interface {
	// GeneratePractice produces a single fresh problem outside the daily
	// rotation.
	GeneratePractice(ctx context.Context, category domain.Category) (*domain.Problem, error)

	// SubmitPractice grades a practice attempt against the answer query
	// carried by the request. Nothing is persisted.
	SubmitPractice(ctx context.Context, submittedSQL, answerSQL string, difficulty domain.Difficulty) (*PracticeResult, error)
}
