package questiongen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/orbitrest/internal/quiz"
)

const (
	minOptions        = 2
	maxOptions        = 6
	maxQuestionLength = 300
	maxOptionLength   = 200
	maxExplanation    = 1000
)

// Validator checks a draft. Implementations are stateless.
type Validator interface {
	Name() string
	Validate(d *Draft, in Input) *ValidationError
}

// ValidationError explains why a draft was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator enforces lengths, option count, distinct options,
// the answer index and a known difficulty.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(d *Draft, _ Input) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	text := strings.TrimSpace(d.Question)
	switch {
	case text == "":
		return fail("question is empty")
	case utf8.RuneCountInString(text) > maxQuestionLength:
		return fail("question exceeds %d characters", maxQuestionLength)
	}

	expl := strings.TrimSpace(d.Explanation)
	switch {
	case expl == "":
		return fail("explanation is empty")
	case utf8.RuneCountInString(expl) > maxExplanation:
		return fail("explanation exceeds %d characters", maxExplanation)
	}

	if n := len(d.Options); n < minOptions || n > maxOptions {
		return fail("need %d to %d options, got %d", minOptions, maxOptions, n)
	}
	seen := make(map[string]bool, len(d.Options))
	for i, o := range d.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			return fail("option %d is empty", i)
		}
		if utf8.RuneCountInString(o) > maxOptionLength {
			return fail("option %d exceeds %d characters", i, maxOptionLength)
		}
		key := strings.ToLower(o)
		if seen[key] {
			return fail("option %q is repeated", o)
		}
		seen[key] = true
	}

	if d.CorrectAnswer < 0 || d.CorrectAnswer >= len(d.Options) {
		return fail("correctAnswer %d is out of range", d.CorrectAnswer)
	}
	if _, err := quiz.ParseDifficulty(d.Difficulty); err != nil {
		return fail("unknown difficulty %q", d.Difficulty)
	}
	return nil
}

// DedupValidator rejects drafts whose question text matches one already
// stored for the concept or accepted earlier in the batch.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(d *Draft, in Input) *ValidationError {
	if in.Existing[normalizeText(d.Question)] {
		return &ValidationError{Validator: v.Name(), Message: "duplicate of an existing question"}
	}
	return nil
}

// normalizeText folds case, whitespace and trailing punctuation so trivial
// rewordings compare equal.
func normalizeText(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return strings.TrimRight(s, "?.! ")
}
