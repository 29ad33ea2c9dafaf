package domain

import "time"

// Verdict is the final outcome of one grading call.
type Verdict struct {
	IsCorrect bool    `json:"is_correct"`
	Feedback  string  `json:"feedback"`
	ElapsedMs float64 `json:"execution_time_ms"`
	// Diff carries the raw error detail on exceptional paths only.
	Diff *string `json:"diff,omitempty"`
}

// SubmissionRecord is the shape handed to the persistence port after
// every graded attempt, correct or not.
type SubmissionRecord struct {
	SessionDate string    `db:"session_date"`
	ProblemID   string    `db:"problem_id"`
	Category    Category  `db:"category"`
	SQLText     string    `db:"sql_text"`
	IsCorrect   bool      `db:"is_correct"`
	Feedback    string    `db:"feedback"`
	UserName    *string   `db:"user_name"`
	SubmittedAt time.Time `db:"submitted_at"`
}

type SubmissionTable struct {
	SessionDate string
	ProblemID   string
	Category    string
	SQLText     string
	IsCorrect   string
	Feedback    string
	UserName    string
	SubmittedAt string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		SessionDate: "session_date",
		ProblemID:   "problem_id",
		Category:    "category",
		SQLText:     "sql_text",
		IsCorrect:   "is_correct",
		Feedback:    "feedback",
		UserName:    "user_name",
		SubmittedAt: "submitted_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}
