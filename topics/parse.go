package topics

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// These messages end up in the API response after "Failed to generate content: ".
var (
	ErrUnparsableReply = errors.New("Could not parse AI response as JSON")
	ErrMissingFields   = errors.New("AI response missing required fields")
	ErrTooFewQuestions = errors.New("AI did not generate enough quiz questions")
	ErrMalformedQuiz   = errors.New("AI response contains a malformed quiz question")
)

// ParseContent turns a model reply into Content with exactly QuizLength questions.
// The reply may be bare JSON or JSON inside a markdown code fence.
func ParseContent(reply string) (Content, error) {
	raw, err := extractJSON(reply)
	if err != nil {
		return Content{}, err
	}
	raw = trimQuiz(raw)
	if err := validateShape(raw); err != nil {
		return Content{}, err
	}
	var content Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrUnparsableReply, err)
	}
	content.Quiz = content.Quiz[:QuizLength]
	for i, q := range content.Quiz {
		if err := checkQuestion(q); err != nil {
			return Content{}, fmt.Errorf("%w: question %d %s", ErrMalformedQuiz, i+1, err)
		}
	}
	return content, nil
}

// trimQuiz drops quiz entries past QuizLength so surplus questions are never validated.
// Anything it cannot reshape is returned untouched for validateShape to judge.
func trimQuiz(raw []byte) []byte {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	var quiz []json.RawMessage
	if err := json.Unmarshal(obj["quiz"], &quiz); err != nil || len(quiz) <= QuizLength {
		return raw
	}
	trimmed, err := json.Marshal(quiz[:QuizLength])
	if err != nil {
		return raw
	}
	obj["quiz"] = trimmed
	out, err := json.Marshal(obj)
	if err != nil {
		return raw
	}
	return out
}

// extractJSON tries the whole reply, then the first ```json block, then the first ``` block.
func extractJSON(reply string) ([]byte, error) {
	candidates := []string{strings.TrimSpace(reply)}
	if block, ok := fencedBlock(reply, "```json"); ok {
		candidates = append(candidates, block)
	}
	if block, ok := fencedBlock(reply, "```"); ok {
		candidates = append(candidates, block)
	}
	for _, c := range candidates {
		if c != "" && json.Valid([]byte(c)) {
			return []byte(c), nil
		}
	}
	return nil, ErrUnparsableReply
}

// fencedBlock returns the text between the first opener and the next ```.
// An unclosed fence runs to the end of the reply. For a bare ``` opener a
// language tag on the opening line is skipped.
func fencedBlock(reply, opener string) (string, bool) {
	start := strings.Index(reply, opener)
	if start < 0 {
		return "", false
	}
	body := reply[start+len(opener):]
	if opener == "```" {
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			first := strings.TrimSpace(body[:nl])
			if first != "" && !strings.HasPrefix(first, "{") && !strings.HasPrefix(first, "[") {
				body = body[nl+1:]
			}
		}
	}
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body), true
}

func checkQuestion(q QuizQuestion) error {
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("has no text")
	}
	if len(q.Options) < 2 {
		return errors.New("has fewer than two options")
	}
	for _, o := range q.Options {
		if o == q.CorrectAnswer {
			return nil
		}
	}
	return errors.New("has a correct answer that is not one of its options")
}
