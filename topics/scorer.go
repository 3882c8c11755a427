package topics

import "studymate-backend/apierr"

// ScoreQuiz compares answers position by position, exact and case-sensitive.
func ScoreQuiz(quiz []QuizQuestion, answers []string) (QuizResult, error) {
	if len(answers) != len(quiz) {
		return QuizResult{}, apierr.Validation("Number of answers must match number of questions")
	}
	if len(quiz) == 0 {
		return QuizResult{}, apierr.Validation("Quiz has no questions")
	}
	score := 0
	for i, q := range quiz {
		if answers[i] == q.CorrectAnswer {
			score++
		}
	}
	pct := 100 * float64(score) / float64(len(quiz))
	return QuizResult{
		Score:      score,
		Total:      len(quiz),
		Percentage: pct,
		Passed:     pct >= PassPercentage,
	}, nil
}
