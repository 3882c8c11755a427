package topics

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

var contentSchemaJSON = fmt.Sprintf(`{
  "type": "object",
  "required": ["explanation", "quiz"],
  "properties": {
    "explanation": {"type": "string"},
    "quiz": {
      "type": "array",
      "minItems": %d,
      "items": {
        "type": "object",
        "required": ["question", "options", "correct_answer"],
        "properties": {
          "question": {"type": "string"},
          "options": {"type": "array", "items": {"type": "string"}},
          "correct_answer": {"type": "string"}
        }
      }
    }
  }
}`, QuizLength)

var contentSchema = mustSchema(contentSchemaJSON)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("content schema: %v", err))
	}
	return schema
}

// validateShape maps schema violations onto the reply errors, most fundamental first.
func validateShape(raw []byte) error {
	res, err := contentSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnparsableReply, err)
	}
	if res.Valid() {
		return nil
	}
	var tooFew bool
	var first gojsonschema.ResultError
	for _, re := range res.Errors() {
		ctx := re.Context().String()
		switch {
		case ctx == "(root)" || ctx == "(root).explanation":
			return ErrMissingFields
		case ctx == "(root).quiz" && re.Type() == "invalid_type":
			return ErrMissingFields
		case ctx == "(root).quiz" && re.Type() == "array_min_items":
			tooFew = true
		case first == nil:
			first = re
		}
	}
	if tooFew {
		return ErrTooFewQuestions
	}
	return fmt.Errorf("%w: %s", ErrMalformedQuiz, first.String())
}
