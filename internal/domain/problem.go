package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named partition of problems and reference data. Every
// lookup of a daily problem set is scoped by it.
type Category string

const (
	CategoryPA     Category = "pa"
	CategoryStream Category = "stream"
)

// Valid reports whether the category is one of the known tracks.
func (c Category) Valid() bool {
	return c == CategoryPA || c == CategoryStream
}

// Difficulty levels a generated problem can carry.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyScore is the practice-mode score awarded per difficulty.
func DifficultyScore(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyHard:
		return 50
	default:
		return 25
	}
}

// Problem is one generated SQL problem. AnswerSQL is the reference
// query whose result defines correctness.
type Problem struct {
	ProblemID  string     `json:"problem_id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Topic      string     `json:"topic,omitempty"`
	Question   string     `json:"question"`
	AnswerSQL  string     `json:"answer_sql"`
	Category   Category   `json:"data_type,omitempty"`
}

// NewPracticeProblemID builds the id used for on-demand practice
// problems, e.g. "practice_1a2b3c4d".
func NewPracticeProblemID() string {
	return "practice_" + uuid.New().String()[:8]
}

// ProblemSet is the dated, category-scoped document holding one day's
// problems.
type ProblemSet struct {
	Date     time.Time
	Category Category
	Problems []Problem
}

// FindByID returns the problem with the given id, or nil when the set
// does not contain it.
func (s *ProblemSet) FindByID(problemID string) *Problem {
	for i := range s.Problems {
		if s.Problems[i].ProblemID == problemID {
			return &s.Problems[i]
		}
	}
	return nil
}
