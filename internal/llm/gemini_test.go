package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/abhisek/orbitrest/internal/schema"
)

func TestGeminiModelMapping(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-2.0-flash", geminiModels))
}

func TestGeminiSchemaFromNormalized(t *testing.T) {
	s := &schema.Schema{
		Name: "gemini-test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question":   map[string]any{"type": "string", "description": "prompt"},
				"difficulty": map[string]any{"type": "string", "enum": []string{"beginner", "advanced"}},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
					"maxItems": 6,
				},
				"correctAnswer": map[string]any{"type": "integer"},
			},
			"required": []string{"question", "options", "correctAnswer"},
		},
	}
	def, err := s.Normalized()
	require.NoError(t, err)

	got := geminiSchema(def)
	assert.Equal(t, genai.TypeObject, got.Type)
	require.Len(t, got.Properties, 4)
	assert.Equal(t, "prompt", got.Properties["question"].Description)
	assert.Equal(t, []string{"beginner", "advanced"}, got.Properties["difficulty"].Enum)
	assert.Equal(t, genai.TypeInteger, got.Properties["correctAnswer"].Type)

	opts := got.Properties["options"]
	assert.Equal(t, genai.TypeArray, opts.Type)
	assert.Equal(t, genai.TypeString, opts.Items.Type)
	require.NotNil(t, opts.MinItems)
	assert.EqualValues(t, 2, *opts.MinItems)
	assert.EqualValues(t, 6, *opts.MaxItems)

	assert.ElementsMatch(t, []string{"question", "options", "correctAnswer"}, got.Required)
}
