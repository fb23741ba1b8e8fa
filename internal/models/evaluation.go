package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Evaluation struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateName string    `gorm:"type:text" json:"candidate_name"`
	JobTitle      string    `gorm:"type:text" json:"job_title"`
	Score         int       `json:"score"`
	Explanation   string    `gorm:"type:text" json:"explanation"`
	Suggestions   string    `gorm:"type:text" json:"-"`
	ResumePath    *string   `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// EncodeSuggestions serializes the ordered suggestion list into the single
// text column used by the evaluations table.
func EncodeSuggestions(suggestions []string) (string, error) {
	data, err := json.Marshal(suggestions)
	if err != nil {
		return "", fmt.Errorf("failed to encode suggestions: %w", err)
	}
	return string(data), nil
}

// DecodeSuggestions restores the suggestion list from its stored form,
// preserving element order and count.
func DecodeSuggestions(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}
	return suggestions, nil
}
