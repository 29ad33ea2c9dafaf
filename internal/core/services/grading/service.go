package grading

import (
	"context"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

// IGradingService grades submitted SQL against the day's reference
// queries.
type IGradingService interface {
	// Grade runs the submitted SQL, compares it with the reference
	// result and records the attempt. It never returns an error: every
	// failure mode is folded into the verdict.
	Grade(ctx context.Context, problemID, submittedSQL string, category domain.Category, userName *string) *domain.Verdict

	// Hint asks the LLM collaborator to explain an incorrect submission.
	Hint(ctx context.Context, problemID, submittedSQL string, category domain.Category) (string, error)
}
