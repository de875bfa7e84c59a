// Package quiz delivers quiz questions without their answer keys, grades
// submissions against the stored key, and keeps an append-only attempt log.
package quiz

import (
	"context"
	"time"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/store"
)

// Engine is stateless; all state lives behind the repos.
type Engine struct {
	concepts  store.ConceptRepo
	questions store.QuestionRepo
	attempts  store.AttemptRepo
	now       func() time.Time
}

// NewEngine creates a quiz engine.
func NewEngine(concepts store.ConceptRepo, questions store.QuestionRepo, attempts store.AttemptRepo) *Engine {
	return &Engine{
		concepts:  concepts,
		questions: questions,
		attempts:  attempts,
		now:       time.Now,
	}
}

// ListQuestions returns the questions of conceptID ordered by id, without
// answer keys. An unknown concept or one without questions yields an empty
// slice.
func (e *Engine) ListQuestions(ctx context.Context, conceptID int) ([]Question, error) {
	records, err := e.questions.ListByConcept(ctx, conceptID)
	if err != nil {
		return nil, apperr.Storage("list questions", err)
	}
	out := make([]Question, 0, len(records))
	for _, r := range records {
		out = append(out, publicQuestion(r))
	}
	return out, nil
}

// SubmitAnswer grades selected against the stored answer key and appends an
// attempt. Any integer is accepted; an index outside the options is graded
// incorrect. A missing question fails with NotFound before anything is
// written.
func (e *Engine) SubmitAnswer(ctx context.Context, userID, questionID, selected int) (*SubmitResult, error) {
	q, err := e.questions.Get(ctx, questionID)
	if err != nil {
		return nil, apperr.Storage("get question", err)
	}

	rec := &store.Attempt{
		UserID:         userID,
		QuestionID:     q.ID,
		SelectedAnswer: selected,
		IsCorrect:      selected == q.CorrectAnswer,
		AttemptedAt:    e.now().UTC(),
	}
	if err := e.attempts.Create(ctx, rec); err != nil {
		return nil, apperr.Storage("record attempt", err)
	}

	return &SubmitResult{
		Attempt:       attemptFromRecord(*rec),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}, nil
}

// GetProgressSummary folds every attempt by userID on the questions of
// conceptID into raw counts.
func (e *Engine) GetProgressSummary(ctx context.Context, userID, conceptID int) (Summary, error) {
	outcomes, err := e.attempts.OutcomesByUserConcept(ctx, userID, conceptID)
	if err != nil {
		return Summary{}, apperr.Storage("summarize attempts", err)
	}
	var s Summary
	for _, correct := range outcomes {
		s.TotalAttempts++
		if correct {
			s.CorrectAttempts++
		}
	}
	return s, nil
}

// ListAttempts returns the attempt history of userID on conceptID, newest
// first.
func (e *Engine) ListAttempts(ctx context.Context, userID, conceptID int) ([]Attempt, error) {
	records, err := e.attempts.ListByUserConcept(ctx, userID, conceptID)
	if err != nil {
		return nil, apperr.Storage("list attempts", err)
	}
	out := make([]Attempt, 0, len(records))
	for _, r := range records {
		out = append(out, attemptFromRecord(r))
	}
	return out, nil
}

// CreateQuestion validates and stores a question. The caller is
// responsible for authorization.
func (e *Engine) CreateQuestion(ctx context.Context, nq NewQuestion) (*AdminQuestion, error) {
	rec, err := validateNewQuestion(nq)
	if err != nil {
		return nil, err
	}
	if _, err := e.concepts.Get(ctx, nq.ConceptID); err != nil {
		return nil, apperr.Storage("get concept", err)
	}
	if err := e.questions.Create(ctx, rec); err != nil {
		return nil, apperr.Storage("create question", err)
	}
	return &AdminQuestion{
		Question:      publicQuestion(*rec),
		CorrectAnswer: rec.CorrectAnswer,
	}, nil
}
