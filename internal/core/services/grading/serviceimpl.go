package grading

import (
	"context"
	"fmt"
	"time"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

var _ IGradingService = (*GradingService)(nil)

const (
	noRowsFeedback = "Query returned no rows."

	// The reference query failing is a platform fault, never the
	// learner's. The feedback must not read like a wrong answer.
	referenceFailedFeedback = "Grading system error: the reference query could not be executed. " +
		"Your submission was not judged wrong; please try again later."
)

// GradingService implements the IGradingService interface
type GradingService struct {
	runner      secondary.QueryRunner
	problems    secondary.ProblemStore
	submissions secondary.SubmissionRepository
	generator   secondary.ProblemGenerator
	logger      primary.Logger
}

// NewGradingService creates a new grading service
func NewGradingService(
	runner secondary.QueryRunner,
	problems secondary.ProblemStore,
	submissions secondary.SubmissionRepository,
	generator secondary.ProblemGenerator,
	logger primary.Logger,
) *GradingService {
	return &GradingService{
		runner:      runner,
		problems:    problems,
		submissions: submissions,
		generator:   generator,
		logger:      logger,
	}
}

// Grade sequences reference lookup, execution of both queries,
// comparison and persistence. Terminal outcomes: execution error,
// compared (correct or not), or the ungraded fallback when no
// reference exists for the problem.
func (s *GradingService) Grade(ctx context.Context, problemID, submittedSQL string, category domain.Category, userName *string) *domain.Verdict {
	start := time.Now()

	problem, err := s.problems.FindProblem(ctx, problemID, category, start)
	if err != nil {
		// A broken lookup degrades to "no reference", same as absence.
		s.logger.Warn("Reference lookup failed", "problemId", problemID, "category", category, "error", err)
		problem = nil
	}

	submitted, err := s.runner.RunQuery(ctx, submittedSQL)
	if err != nil {
		verdict := errorVerdict(fmt.Sprintf("SQL execution error: %s", err.Error()), err, start)
		s.record(ctx, problemID, category, submittedSQL, userName, verdict, start)
		return verdict
	}

	var verdict *domain.Verdict
	switch {
	case problem != nil && problem.AnswerSQL != "":
		reference, err := s.runner.RunQuery(ctx, problem.AnswerSQL)
		if err != nil {
			s.logger.Error("Reference query failed to execute",
				"problemId", problemID, "category", category, "error", err)
			verdict = errorVerdict(referenceFailedFeedback, err, start)
		} else {
			outcome := CompareResults(submitted, reference)
			verdict = &domain.Verdict{
				IsCorrect: outcome.Equal,
				Feedback:  outcome.Reason,
				ElapsedMs: elapsedMs(start),
			}
		}
	case submitted.RowCount() > 0:
		// No reference for this problem: accept any non-empty result.
		// Known weak spot, kept on purpose so ungraded days still give
		// the learner a green light instead of an error.
		verdict = &domain.Verdict{IsCorrect: true, Feedback: correctFeedback, ElapsedMs: elapsedMs(start)}
	default:
		verdict = &domain.Verdict{IsCorrect: false, Feedback: noRowsFeedback, ElapsedMs: elapsedMs(start)}
	}

	s.record(ctx, problemID, category, submittedSQL, userName, verdict, start)
	return verdict
}

// Hint fetches the problem (if it still exists) and asks the generator
// for an explanation of the submission.
func (s *GradingService) Hint(ctx context.Context, problemID, submittedSQL string, category domain.Category) (string, error) {
	problem, err := s.problems.FindProblem(ctx, problemID, category, time.Now())
	if err != nil {
		s.logger.Warn("Problem lookup for hint failed", "problemId", problemID, "error", err)
	}

	hint, err := s.generator.Hint(ctx, problem, submittedSQL)
	if err != nil {
		s.logger.Error("Failed to generate hint", "problemId", problemID, "error", err)
		return "", fmt.Errorf("failed to generate hint: %w", err)
	}
	return hint, nil
}

// record stores the graded attempt. Persistence is bookkeeping only:
// an error here is logged and swallowed so the verdict always reaches
// the caller.
func (s *GradingService) record(ctx context.Context, problemID string, category domain.Category, submittedSQL string, userName *string, verdict *domain.Verdict, start time.Time) {
	rec := &domain.SubmissionRecord{
		SessionDate: start.UTC().Format("2006-01-02"),
		ProblemID:   problemID,
		Category:    category,
		SQLText:     submittedSQL,
		IsCorrect:   verdict.IsCorrect,
		Feedback:    verdict.Feedback,
		UserName:    userName,
		SubmittedAt: time.Now(),
	}
	if err := s.submissions.Record(ctx, rec); err != nil {
		s.logger.Error("Failed to record submission", "problemId", problemID, "error", err)
	}
}

func errorVerdict(feedback string, cause error, start time.Time) *domain.Verdict {
	diff := cause.Error()
	return &domain.Verdict{
		IsCorrect: false,
		Feedback:  feedback,
		ElapsedMs: elapsedMs(start),
		Diff:      &diff,
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
