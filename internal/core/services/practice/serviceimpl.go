package practice

import (
	"context"
	"fmt"
	"time"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/grading"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/static/errs"
)

var _ IPracticeService = (*PracticeService)(nil)

const referenceFailedFeedback = "Grading system error: the reference query could not be executed. " +
	"Your submission was not judged wrong; please try again later."

// PracticeService implements the IPracticeService interface
type PracticeService struct {
	runner    secondary.QueryRunner
	generator secondary.ProblemGenerator
	logger    primary.Logger
}

// NewPracticeService creates a new practice service
func NewPracticeService(
	runner secondary.QueryRunner,
	generator secondary.ProblemGenerator,
	logger primary.Logger,
) *PracticeService {
	return &PracticeService{
		runner:    runner,
		generator: generator,
		logger:    logger,
	}
}

// GeneratePractice asks the generator for one problem and rebrands it
// with a practice id so it cannot collide with the daily rotation.
func (s *PracticeService) GeneratePractice(ctx context.Context, category domain.Category) (*domain.Problem, error) {
	if !category.Valid() {
		return nil, errs.InvalidCategory
	}

	problems, err := s.generator.GenerateProblems(ctx, category, 1)
	if err != nil {
		s.logger.Error("Practice generation failed", "category", category, "error", err)
		return nil, fmt.Errorf("%w: %v", errs.GenerationFailed, err)
	}
	if len(problems) == 0 {
		return nil, errs.EmptyGeneration
	}

	problem := problems[0]
	if problem.AnswerSQL == "" {
		return nil, errs.AnswerSQLRequired
	}
	problem.ProblemID = domain.NewPracticeProblemID()
	problem.Category = category
	return &problem, nil
}

// SubmitPractice runs the reference first: if the answer query itself
// is broken the learner cannot be at fault and the attempt must not be
// judged wrong.
func (s *PracticeService) SubmitPractice(ctx context.Context, submittedSQL, answerSQL string, difficulty domain.Difficulty) (*PracticeResult, error) {
	if submittedSQL == "" {
		return nil, errs.SubmittedSQLNeeded
	}
	if answerSQL == "" {
		return nil, errs.AnswerSQLRequired
	}
	start := time.Now()

	reference, err := s.runner.RunQuery(ctx, answerSQL)
	if err != nil {
		s.logger.Error("Practice reference query failed", "error", err)
		return &PracticeResult{
			IsCorrect: false,
			Feedback:  referenceFailedFeedback,
			ElapsedMs: elapsedMs(start),
		}, nil
	}

	submitted, err := s.runner.RunQuery(ctx, submittedSQL)
	if err != nil {
		return &PracticeResult{
			IsCorrect: false,
			Feedback:  fmt.Sprintf("SQL execution error: %s", err.Error()),
			ElapsedMs: elapsedMs(start),
		}, nil
	}

	outcome := grading.CompareResults(submitted, reference)
	result := &PracticeResult{
		IsCorrect: outcome.Equal,
		Feedback:  outcome.Reason,
		ElapsedMs: elapsedMs(start),
	}
	if outcome.Equal {
		result.Score = domain.DifficultyScore(difficulty)
	}
	return result, nil
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
