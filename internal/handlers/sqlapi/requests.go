package sqlapi

import "github.com/KnellBalm/Offline-Lab/internal/domain"

// ExecuteRequest represents a request to run a query without grading
type ExecuteRequest struct {
	SQL string `json:"sql"`
}

// ExecuteResponse carries the raw result set back to the editor
type ExecuteResponse struct {
	Columns  []string     `json:"columns"`
	Rows     []domain.Row `json:"rows"`
	RowCount int          `json:"row_count"`
}

// SubmitRequest represents a graded submission
type SubmitRequest struct {
	ProblemID string `json:"problem_id"`
	SQL       string `json:"sql"`
	Category  string `json:"data_type"`
}

// HintRequest asks for an explanation of a submission
type HintRequest struct {
	ProblemID string `json:"problem_id"`
	SQL       string `json:"sql"`
	Category  string `json:"data_type"`
}

// ProblemView is a problem as shown to the learner. The reference
// query never leaves the server on this path.
type ProblemView struct {
	ProblemID  string `json:"problem_id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic,omitempty"`
	Question   string `json:"question"`
}

// TodayResponse lists the current day's problems for one category
type TodayResponse struct {
	Date     string        `json:"date"`
	Category string        `json:"data_type"`
	Problems []ProblemView `json:"problems"`
}
