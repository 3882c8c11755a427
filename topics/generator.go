package topics

import (
	"context"

	"github.com/google/uuid"

	"studymate-backend/apierr"
	"studymate-backend/logger"
)

// Completer is the text-generation call. openai.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, sessionID, system, user string) (string, error)
}

type Generator struct {
	ai         Completer
	log        *logger.Logger
	newSession func() string
}

func NewGenerator(ai Completer, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{
		ai:         ai,
		log:        log.With("component", "generator"),
		newSession: func() string { return "studymate_" + uuid.NewString() },
	}
}

// Generate asks the model for an explanation and quiz. Every failure, including
// a cancelled ctx, comes back as an apierr generation error wrapping the cause.
func (g *Generator) Generate(ctx context.Context, topic string, d Difficulty) (Content, error) {
	session := g.newSession()
	reply, err := g.ai.Complete(ctx, session, systemPrompt(d), userPrompt(topic, d))
	if err != nil {
		g.log.Error("generation call failed", "session_id", session, "difficulty", d, "error", err)
		return Content{}, apierr.Generation(err)
	}
	g.log.Debug("generation reply", "session_id", session, "reply_len", len(reply))

	content, err := ParseContent(reply)
	if err != nil {
		g.log.Error("unusable generation reply", "session_id", session, "difficulty", d, "error", err)
		return Content{}, apierr.Generation(err)
	}
	return content, nil
}
