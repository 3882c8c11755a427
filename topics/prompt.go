package topics

import "fmt"

var difficultyInstructions = map[Difficulty]string{
	Beginner:     "Explain in very simple terms, suitable for someone with no prior knowledge. Use analogies and examples.",
	Intermediate: "Provide a detailed explanation with some technical details, suitable for someone with basic understanding.",
	Advanced:     "Give a comprehensive, technical explanation with advanced concepts and nuances.",
}

func difficultyInstruction(d Difficulty) string {
	if s, ok := difficultyInstructions[d]; ok {
		return s
	}
	return difficultyInstructions[Beginner]
}

func systemPrompt(d Difficulty) string {
	return fmt.Sprintf(`You are an expert educator. Your task is to:
1. Provide a clear, %s-level explanation of the given topic
2. Generate exactly %d multiple-choice quiz questions to test understanding

%s

You MUST respond with valid JSON in this exact format:
{
  "explanation": "Your detailed explanation here",
  "quiz": [
    {
      "question": "Question text",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": "Option A"
    }
  ]
}

Ensure the JSON is valid and properly formatted. Do not include any text outside the JSON.`, d, QuizLength, difficultyInstruction(d))
}

func userPrompt(topic string, d Difficulty) string {
	return fmt.Sprintf("Topic: %s\n\nGenerate a %s-level explanation and %d quiz questions.", topic, d, QuizLength)
}
