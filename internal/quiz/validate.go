package quiz

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/store"
)

// ParseSelectedAnswer checks the shape of a submitted answer: it must be a
// JSON integer. Range is not checked.
func ParseSelectedAnswer(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, apperr.Invalid("selectedAnswer is required")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return 0, apperr.Invalid("selectedAnswer is not valid JSON")
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, apperr.Invalid("selectedAnswer must be an integer")
	}
	i, err := n.Int64()
	if err != nil {
		return 0, apperr.Invalid("selectedAnswer must be an integer, got %s", n)
	}
	return int(i), nil
}

func validateNewQuestion(nq NewQuestion) (*store.Question, error) {
	text := strings.TrimSpace(nq.Question)
	if text == "" {
		return nil, apperr.Invalid("question text is required")
	}
	if len(nq.Options) < 2 {
		return nil, apperr.Invalid("at least two options are required, got %d", len(nq.Options))
	}
	opts := make([]string, len(nq.Options))
	for i, o := range nq.Options {
		opts[i] = strings.TrimSpace(o)
		if opts[i] == "" {
			return nil, apperr.Invalid("option %d is empty", i)
		}
	}
	if nq.CorrectAnswer < 0 || nq.CorrectAnswer >= len(opts) {
		return nil, apperr.Invalid("correctAnswer %d out of range [0, %d)", nq.CorrectAnswer, len(opts))
	}
	d, err := ParseDifficulty(nq.Difficulty)
	if err != nil {
		return nil, err
	}
	return &store.Question{
		ConceptID:     nq.ConceptID,
		Text:          text,
		Options:       opts,
		CorrectAnswer: nq.CorrectAnswer,
		Explanation:   strings.TrimSpace(nq.Explanation),
		Difficulty:    string(d),
	}, nil
}
