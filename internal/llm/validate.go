package llm

import (
	"encoding/json"

	"github.com/abhisek/orbitrest/internal/schema"
)

// validateResponse checks raw against s. A nil schema always passes.
// Failures are returned as *ErrInvalidResponse so the retry decorator can
// give the model a second chance.
func validateResponse(s *schema.Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	if err := s.ValidateJSON(raw); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}
