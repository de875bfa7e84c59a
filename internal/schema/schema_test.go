package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planetSchema() *Schema {
	return &Schema{
		Name:        "test-planet",
		Description: "A planet",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":     map[string]any{"type": "string", "minLength": 1},
				"distance": map[string]any{"type": "integer", "minimum": 0},
				"type":     map[string]any{"type": "string", "enum": []string{"Terrestrial", "Gas Giant", "Ice Giant"}},
			},
			"required":             []string{"name", "distance"},
			"additionalProperties": false,
		},
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Earth","distance":149,"type":"Terrestrial"}`, false},
		{"optional omitted", `{"name":"Pluto","distance":5906}`, false},
		{"missing required", `{"name":"Mars"}`, true},
		{"wrong type", `{"name":"Venus","distance":"far"}`, true},
		{"bad enum", `{"name":"Sun","distance":0,"type":"Star"}`, true},
		{"extra field", `{"name":"Moon","distance":0,"moons":0}`, true},
		{"fractional integer", `{"name":"Ceres","distance":1.5}`, true},
		{"malformed", `{not json}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := planetSchema().ValidateJSON([]byte(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve), "got %T", err)
			assert.Equal(t, "test-planet", ve.Schema)
		})
	}
}

func TestCompileCachesByName(t *testing.T) {
	a, err := planetSchema().Compile()
	require.NoError(t, err)
	b, err := planetSchema().Compile()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestCompileRejectsBadSchema(t *testing.T) {
	bad := &Schema{Name: "test-bad", Definition: map[string]any{"type": 12}}
	_, err := bad.Compile()
	assert.Error(t, err)
}

func TestNormalizedConvertsSlices(t *testing.T) {
	def, err := planetSchema().Normalized()
	require.NoError(t, err)
	req, ok := def["required"].([]any)
	require.True(t, ok, "required should decode as []any, got %T", def["required"])
	assert.Equal(t, []any{"name", "distance"}, req)
}
