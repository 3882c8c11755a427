package topics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studymate-backend/apierr"
)

type fakeCompleter struct {
	reply    string
	err      error
	sessions []string
	system   string
	user     string
}

func (f *fakeCompleter) Complete(_ context.Context, sessionID, system, user string) (string, error) {
	f.sessions = append(f.sessions, sessionID)
	f.system, f.user = system, user
	return f.reply, f.err
}

func TestGeneratorProducesFiveValidQuestions(t *testing.T) {
	for _, d := range []Difficulty{Beginner, Intermediate, Advanced} {
		t.Run(string(d), func(t *testing.T) {
			ai := &fakeCompleter{reply: "```json\n" + sampleReply(7) + "\n```"}
			c, err := NewGenerator(ai, nil).Generate(context.Background(), "Go channels", d)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(c.Quiz) != QuizLength {
				t.Fatalf("len=%d", len(c.Quiz))
			}
			for i, q := range c.Quiz {
				found := false
				for _, o := range q.Options {
					found = found || o == q.CorrectAnswer
				}
				if !found {
					t.Fatalf("question %d answer %q not in options", i, q.CorrectAnswer)
				}
			}
			if !strings.Contains(ai.system, difficultyInstructions[d]) {
				t.Fatalf("system prompt lacks %s instruction", d)
			}
			if !strings.Contains(ai.user, "Topic: Go channels") || !strings.Contains(ai.user, string(d)+"-level") {
				t.Fatalf("user prompt=%q", ai.user)
			}
		})
	}
}

func TestGeneratorFreshSessionPerCall(t *testing.T) {
	ai := &fakeCompleter{reply: sampleReply(5)}
	g := NewGenerator(ai, nil)
	for i := 0; i < 2; i++ {
		if _, err := g.Generate(context.Background(), "x", Beginner); err != nil {
			t.Fatal(err)
		}
	}
	if len(ai.sessions) != 2 || ai.sessions[0] == ai.sessions[1] {
		t.Fatalf("sessions=%v", ai.sessions)
	}
	for _, s := range ai.sessions {
		if !strings.HasPrefix(s, "studymate_") {
			t.Fatalf("session=%q", s)
		}
	}
}

func TestGeneratorUnknownDifficultyFallsBackToBeginner(t *testing.T) {
	ai := &fakeCompleter{reply: sampleReply(5)}
	if _, err := NewGenerator(ai, nil).Generate(context.Background(), "x", Difficulty("expert")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ai.system, difficultyInstructions[Beginner]) {
		t.Fatal("expected beginner instruction")
	}
}

func TestGeneratorErrorsBecomeGenerationErrors(t *testing.T) {
	cases := []struct {
		name   string
		ai     *fakeCompleter
		detail string
	}{
		{"call fails", &fakeCompleter{err: errors.New("upstream 503")}, "Failed to generate content: upstream 503"},
		{"missing quiz", &fakeCompleter{reply: `{"explanation":"x"}`}, "Failed to generate content: AI response missing required fields"},
		{"too few", &fakeCompleter{reply: sampleReply(3)}, "Failed to generate content: AI did not generate enough quiz questions"},
		{"prose", &fakeCompleter{reply: "I think the answer is..."}, "Failed to generate content: Could not parse AI response as JSON"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGenerator(tc.ai, nil).Generate(context.Background(), "x", Beginner)
			if !apierr.Is(err, apierr.CodeGeneration) {
				t.Fatalf("err=%v", err)
			}
			if err.Error() != tc.detail {
				t.Fatalf("message=%q want %q", err.Error(), tc.detail)
			}
		})
	}
}

func TestGeneratorKeepsDeadlineInChain(t *testing.T) {
	ai := &fakeCompleter{err: context.DeadlineExceeded}
	_, err := NewGenerator(ai, nil).Generate(context.Background(), "x", Beginner)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err=%v", err)
	}
}
