// Package questiongen drafts multiple-choice quiz questions for a REST
// concept with an LLM. Drafts are checked by a validator chain and
// de-duplicated before they are stored through the quiz engine.
package questiongen

import (
	"context"

	"github.com/abhisek/orbitrest/internal/catalog"
	"github.com/abhisek/orbitrest/internal/quiz"
)

// Draft is one question as returned by the model, before validation.
type Draft struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// Input is everything a validator may look at besides the draft.
type Input struct {
	Concept catalog.Concept

	// Existing holds normalized texts of questions already stored for the
	// concept plus drafts accepted earlier in the same batch.
	Existing map[string]bool
}

// Skipped records a draft that was not stored.
type Skipped struct {
	Draft  Draft
	Reason string
}

// Report is the outcome of one Generate call.
type Report struct {
	Created []quiz.AdminQuestion
	Skipped []Skipped
}

// QuestionStore is the part of quiz.Engine the generator needs.
type QuestionStore interface {
	ListQuestions(ctx context.Context, conceptID int) ([]quiz.Question, error)
	CreateQuestion(ctx context.Context, nq quiz.NewQuestion) (*quiz.AdminQuestion, error)
}
