// Package schema compiles and applies JSON Schema documents. LLM structured
// output and question-bank imports are both checked here.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition.
type Schema struct {
	// Name identifies the schema and keys the compile cache. Kebab-case,
	// e.g. "quiz-questions".
	Name string

	// Description is sent to LLMs to guide generation.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// ValidationError reports a document that does not satisfy a schema.
type ValidationError struct {
	Schema string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Schema, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// compiled caches compiled schemas by name.
var compiled sync.Map // map[string]*jsonschema.Schema

// Normalized returns the definition as decoded JSON (maps, []any, float64),
// the shape both the compiler and provider schema converters expect.
func (s *Schema) Normalized() (map[string]any, error) {
	b, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	return out, nil
}

// Compile returns the compiled form of s, compiling at most once per name.
func (s *Schema) Compile() (*jsonschema.Schema, error) {
	if c, ok := compiled.Load(s.Name); ok {
		return c.(*jsonschema.Schema), nil
	}

	def, err := s.Normalized()
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", s.Name, err)
	}

	actual, _ := compiled.LoadOrStore(s.Name, sch)
	return actual.(*jsonschema.Schema), nil
}

// Validate checks an already-decoded JSON value against s.
func (s *Schema) Validate(v any) error {
	sch, err := s.Compile()
	if err != nil {
		return err
	}
	if err := sch.Validate(v); err != nil {
		return &ValidationError{Schema: s.Name, Err: err}
	}
	return nil
}

// ValidateJSON decodes raw and validates it against s.
func (s *Schema) ValidateJSON(raw []byte) error {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ValidationError{Schema: s.Name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return s.Validate(v)
}
