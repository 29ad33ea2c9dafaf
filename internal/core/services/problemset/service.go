package problemset

import (
	"context"
	"time"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

// IProblemSetService serves and maintains the daily problem sets.
type IProblemSetService interface {
	// GetToday returns the current day's set for a category, reading
	// through the cache.
	GetToday(ctx context.Context, category domain.Category) (*domain.ProblemSet, error)

	// EnsureDaily generates and stores the set for a day unless it
	// already exists. Returns true when a new set was generated.
	EnsureDaily(ctx context.Context, category domain.Category, day time.Time) (bool, error)
}
