package topics

import (
	"context"
	"fmt"
	"math"
)

// Progress summarizes a user's study activity across all topics.
type Progress struct {
	TopicsGenerated   int     `json:"topics_generated"`
	QuizzesTaken      int     `json:"quizzes_taken"`
	QuizzesPassed     int     `json:"quizzes_passed"`
	TotalScore        int     `json:"total_score"`
	TotalQuestions    int     `json:"total_questions"`
	AveragePercentage float64 `json:"average_percentage"`
}

// passScore is the lowest score out of QuizLength that passes.
var passScore = int(math.Ceil(PassPercentage * QuizLength / 100))

func (r *SQLRepository) Progress(ctx context.Context, userID string) (Progress, error) {
	var p Progress
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(1),
			COUNT(score),
			COALESCE(SUM(score), 0),
			COALESCE(SUM(CASE WHEN score >= ? THEN 1 ELSE 0 END), 0)
		FROM topics
		WHERE user_id = ?`, passScore, userID,
	).Scan(&p.TopicsGenerated, &p.QuizzesTaken, &p.TotalScore, &p.QuizzesPassed)
	if err != nil {
		return Progress{}, err
	}
	p.finish()
	return p, nil
}

func (p *Progress) finish() {
	p.TotalQuestions = p.QuizzesTaken * QuizLength
	if p.TotalQuestions > 0 {
		p.AveragePercentage = 100 * float64(p.TotalScore) / float64(p.TotalQuestions)
	}
}

func (s *Service) Progress(ctx context.Context, userID string) (Progress, error) {
	p, err := s.repo.Progress(ctx, userID)
	if err != nil {
		return Progress{}, fmt.Errorf("load progress: %w", err)
	}
	return p, nil
}
