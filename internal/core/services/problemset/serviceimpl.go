package problemset

import (
	"context"
	"fmt"
	"time"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/static/errs"
)

var _ IProblemSetService = (*ProblemSetService)(nil)

// ProblemSetService implements the IProblemSetService interface
type ProblemSetService struct {
	store     secondary.ProblemStore
	cache     secondary.ProblemCache
	generator secondary.ProblemGenerator
	perDay    int
	logger    primary.Logger
}

// NewProblemSetService creates a new problem set service
func NewProblemSetService(
	store secondary.ProblemStore,
	cache secondary.ProblemCache,
	generator secondary.ProblemGenerator,
	perDay int,
	logger primary.Logger,
) *ProblemSetService {
	return &ProblemSetService{
		store:     store,
		cache:     cache,
		generator: generator,
		perDay:    perDay,
		logger:    logger,
	}
}

// GetToday reads the day's set through the cache. A cache failure only
// costs the round trip to the store.
func (s *ProblemSetService) GetToday(ctx context.Context, category domain.Category) (*domain.ProblemSet, error) {
	if !category.Valid() {
		return nil, errs.InvalidCategory
	}
	now := time.Now()

	cached, err := s.cache.GetDaily(ctx, category, now)
	if err != nil {
		s.logger.Warn("Problem cache read failed", "category", category, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	set, err := s.store.LoadDaily(ctx, category, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily problems: %w", err)
	}
	if set == nil {
		return nil, errs.ProblemSetMissing
	}

	if err := s.cache.PutDaily(ctx, set); err != nil {
		s.logger.Warn("Problem cache write failed", "category", category, "error", err)
	}
	return set, nil
}

// EnsureDaily generates the set for the day if it is missing.
func (s *ProblemSetService) EnsureDaily(ctx context.Context, category domain.Category, day time.Time) (bool, error) {
	if !category.Valid() {
		return false, errs.InvalidCategory
	}

	existing, err := s.store.LoadDaily(ctx, category, day)
	if err != nil {
		return false, fmt.Errorf("failed to check existing problem set: %w", err)
	}
	if existing != nil {
		s.logger.Info("Problem set already exists", "category", category, "date", day.Format("2006-01-02"))
		return false, nil
	}

	generated, err := s.generator.GenerateProblems(ctx, category, s.perDay)
	if err != nil {
		s.logger.Error("Problem generation failed", "category", category, "error", err)
		return false, fmt.Errorf("%w: %v", errs.GenerationFailed, err)
	}
	if len(generated) == 0 {
		return false, errs.EmptyGeneration
	}

	problems, err := normalizeProblems(generated, category)
	if err != nil {
		return false, err
	}

	set := &domain.ProblemSet{Date: day, Category: category, Problems: problems}
	if err := s.store.SaveDaily(ctx, set); err != nil {
		return false, fmt.Errorf("failed to save generated problem set: %w", err)
	}
	if err := s.cache.PutDaily(ctx, set); err != nil {
		s.logger.Warn("Problem cache write failed", "category", category, "error", err)
	}

	s.logger.Info("Generated daily problem set",
		"category", category, "date", day.Format("2006-01-02"), "count", len(problems))
	return true, nil
}

// normalizeProblems cleans up generator output: "advanced" collapses
// into hard, unknown difficulties into medium, and every problem must
// carry an id, a question and a reference query.
func normalizeProblems(problems []domain.Problem, category domain.Category) ([]domain.Problem, error) {
	out := make([]domain.Problem, 0, len(problems))
	for i, p := range problems {
		if p.ProblemID == "" {
			return nil, fmt.Errorf("generated problem %d has no problem_id", i)
		}
		if p.Question == "" {
			return nil, fmt.Errorf("generated problem %q has no question", p.ProblemID)
		}
		if p.AnswerSQL == "" {
			return nil, fmt.Errorf("%w: problem %q", errs.AnswerSQLRequired, p.ProblemID)
		}

		switch p.Difficulty {
		case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		case "advanced":
			p.Difficulty = domain.DifficultyHard
		default:
			p.Difficulty = domain.DifficultyMedium
		}

		p.Category = category
		out = append(out, p)
	}
	return out, nil
}
