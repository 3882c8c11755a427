package topics

import "studymate-backend/apierr"

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

const difficultyMessage = "Difficulty must be 'beginner', 'intermediate', or 'advanced'"

// ParseDifficulty accepts only the exact lower-case names.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Beginner, Intermediate, Advanced:
		return d, nil
	}
	return "", apierr.Validation(difficultyMessage)
}
