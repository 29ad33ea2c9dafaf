package domain

import "time"

// UserStats summarizes one learner's submission record.
type UserStats struct {
	TotalSubmissions int     `json:"total_submissions" db:"total_submissions"`
	CorrectCount     int     `json:"correct_count" db:"correct_count"`
	SolvedDays       int     `json:"solved_days" db:"solved_days"`
	AccuracyPercent  float64 `json:"accuracy_percent"`
}

// SubmissionHistory is one entry of the submission history listing.
type SubmissionHistory struct {
	SessionDate string    `json:"session_date" db:"session_date"`
	ProblemID   string    `json:"problem_id" db:"problem_id"`
	Category    Category  `json:"data_type" db:"category"`
	IsCorrect   bool      `json:"is_correct" db:"is_correct"`
	Feedback    string    `json:"feedback" db:"feedback"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}

// LeaderboardEntry is one leaderboard row, ranked by correct count then
// streak.
type LeaderboardEntry struct {
	Rank     int    `json:"rank" db:"-"`
	Nickname string `json:"nickname" db:"nickname"`
	Correct  int    `json:"correct" db:"correct"`
	Streak   int    `json:"streak" db:"streak"`
	Level    string `json:"level" db:"-"`
}

// LevelForCorrectCount maps a correct-answer count to a leaderboard
// level name.
func LevelForCorrectCount(correct int) string {
	switch {
	case correct >= 100:
		return "🏆 Master"
	case correct >= 50:
		return "💎 Diamond"
	case correct >= 20:
		return "🥇 Gold"
	case correct >= 10:
		return "🥈 Silver"
	case correct >= 5:
		return "🥉 Bronze"
	default:
		return "🌱 Beginner"
	}
}
