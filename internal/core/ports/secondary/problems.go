package secondary

import (
	"context"
	"time"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

// ProblemStore owns the dated, category-scoped daily problem documents.
type ProblemStore interface {
	// FindProblem looks up one problem inside the day's set. Returns
	// (nil, nil) when the set or the problem does not exist; absence is
	// not an error.
	FindProblem(ctx context.Context, problemID string, category domain.Category, asOf time.Time) (*domain.Problem, error)

	// LoadDaily loads the whole set for a day. Returns (nil, nil) when
	// no set exists yet.
	LoadDaily(ctx context.Context, category domain.Category, asOf time.Time) (*domain.ProblemSet, error)

	// SaveDaily persists a freshly generated set.
	SaveDaily(ctx context.Context, set *domain.ProblemSet) error

	// DeleteOlderThan removes problem documents whose date precedes the
	// cutoff and reports how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// ProblemCache is a day-scoped cache in front of the ProblemStore.
type ProblemCache interface {
	// GetDaily returns the cached set or (nil, nil) on a miss.
	GetDaily(ctx context.Context, category domain.Category, asOf time.Time) (*domain.ProblemSet, error)
	PutDaily(ctx context.Context, set *domain.ProblemSet) error
}

// ProblemGenerator produces new problems via the LLM collaborator.
type ProblemGenerator interface {
	GenerateProblems(ctx context.Context, category domain.Category, n int) ([]domain.Problem, error)
	// Hint explains an incorrect submission to the learner.
	Hint(ctx context.Context, problem *domain.Problem, submittedSQL string) (string, error)
}
