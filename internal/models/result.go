package models

import "time"

// MatchResult is the validated five-field payload the model returns for one
// resume/job-description pair.
type MatchResult struct {
	Score           int      `json:"score"`
	Explanation     string   `json:"explanation"`
	EditSuggestions []string `json:"edit_suggestions"`
	CandidateName   string   `json:"candidate_name"`
	JobTitle        string   `json:"job_title"`
}

type EvaluationItem struct {
	ID            uint      `json:"id"`
	CandidateName string    `json:"candidate_name"`
	JobTitle      string    `json:"job_title"`
	Score         int       `json:"score"`
	Explanation   string    `json:"explanation"`
	Suggestions   []string  `json:"suggestions"`
	CreatedAt     time.Time `json:"created_at"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type EvaluationPage struct {
	Data       []EvaluationItem `json:"data"`
	Pagination Pagination       `json:"pagination"`
}
