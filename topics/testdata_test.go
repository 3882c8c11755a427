package topics

import (
	"encoding/json"
	"fmt"
	"testing"
)

func sampleQuiz(n int) []QuizQuestion {
	out := make([]QuizQuestion, n)
	for i := range out {
		out[i] = QuizQuestion{
			Question:      fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
		}
	}
	return out
}

func sampleReply(n int) string {
	b, _ := json.Marshal(Content{Explanation: "Goroutines are cheap threads.", Quiz: sampleQuiz(n)})
	return string(b)
}

func contentJSON(t *testing.T, quiz []QuizQuestion) string {
	t.Helper()
	b, err := json.Marshal(Content{Explanation: "x", Quiz: quiz})
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
