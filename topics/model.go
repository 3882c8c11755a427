package topics

import (
	"errors"
	"time"
)

const (
	// QuizLength is the number of questions stored per topic.
	QuizLength = 5
	// HistoryLimit caps how many topics History returns.
	HistoryLimit   = 100
	PassPercentage = 60.0
)

var ErrTopicNotFound = errors.New("topic not found")

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// Content is what one generation call produces.
type Content struct {
	Explanation string         `json:"explanation"`
	Quiz        []QuizQuestion `json:"quiz"`
}

type Topic struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Topic       string         `json:"topic"`
	Difficulty  Difficulty     `json:"difficulty"`
	Explanation string         `json:"explanation"`
	Quiz        []QuizQuestion `json:"quiz"`
	Score       *int           `json:"score"`
	CreatedAt   time.Time      `json:"created_at"`
}

type QuizResult struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Passed     bool    `json:"passed"`
}
