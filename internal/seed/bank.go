package seed

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/schema"
)

// BankSchema describes a question-bank document. Questions name their
// concept by HTTP method since concept ids differ between databases.
var BankSchema = &schema.Schema{
	Name:        "question-bank",
	Description: "Quiz questions grouped by the REST method they teach",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"method":   map[string]any{"type": "string", "enum": []string{"GET", "POST", "PUT", "PATCH", "DELETE"}},
						"question": map[string]any{"type": "string", "minLength": 1},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"maxItems": 6,
							"items":    map[string]any{"type": "string", "minLength": 1},
						},
						"correctAnswer": map[string]any{"type": "integer", "minimum": 0},
						"explanation":   map[string]any{"type": "string"},
						"difficulty":    map[string]any{"type": "string", "enum": []string{"beginner", "intermediate", "advanced"}},
					},
					"required":             []string{"method", "question", "options", "correctAnswer"},
					"additionalProperties": false,
				},
			},
		},
		"required": []string{"questions"},
	},
}

// BankEntry is one question of a bank document.
type BankEntry struct {
	Method        string   `json:"method"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

type bank struct {
	Questions []BankEntry `json:"questions"`
}

// ParseBank reads and validates a bank document. Schema violations are
// reported as apperr.ErrInvalidInput.
func ParseBank(r io.Reader) ([]BankEntry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	if err := BankSchema.ValidateJSON(raw); err != nil {
		return nil, apperr.Invalid("question bank: %v", err)
	}
	var b bank
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, apperr.Invalid("question bank: %v", err)
	}
	return b.Questions, nil
}
