package errs

import "errors"

var (
	InvalidCategory    = errors.New("unknown data-set category")
	ProblemSetMissing  = errors.New("no problem set exists for this day")
	GenerationFailed   = errors.New("problem generation failed")
	EmptyGeneration    = errors.New("the generator returned no problems")
	AnswerSQLRequired  = errors.New("answer SQL is required")
	SubmittedSQLNeeded = errors.New("submitted SQL is required")
)
