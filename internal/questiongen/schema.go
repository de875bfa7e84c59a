package questiongen

import "github.com/abhisek/orbitrest/internal/schema"

// BatchSchema is the structured output requested from the model.
var BatchSchema = &schema.Schema{
	Name:        "quiz-question-batch",
	Description: "A batch of multiple-choice questions about one REST API concept",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    minOptions,
							"maxItems":    maxOptions,
							"description": "Answer options; exactly one is correct",
						},
						"correctAnswer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right, in one or two sentences",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []string{"beginner", "intermediate", "advanced"},
						},
					},
					"required":             []string{"question", "options", "correctAnswer", "explanation", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"questions"},
		"additionalProperties": false,
	},
}

// batchOutput is the decoded model response.
type batchOutput struct {
	Questions []Draft `json:"questions"`
}
