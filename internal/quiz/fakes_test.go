package quiz

import (
	"context"
	"sort"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/store"
)

// memDB is an in-memory stand-in for the store, letting tests pick ids.
type memDB struct {
	concepts  map[int]store.Concept
	questions map[int]store.Question
	attempts  []store.Attempt

	nextQuestionID int
	attemptErr     error
	questionErr    error
}

func newMemDB() *memDB {
	return &memDB{
		concepts:       map[int]store.Concept{},
		questions:      map[int]store.Question{},
		nextQuestionID: 100,
	}
}

func (db *memDB) engine() *Engine {
	return NewEngine(memConcepts{db}, memQuestions{db}, memAttempts{db})
}

type memConcepts struct{ db *memDB }

func (m memConcepts) List(_ context.Context) ([]store.Concept, error) {
	out := []store.Concept{}
	for _, c := range m.db.concepts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memConcepts) Get(_ context.Context, id int) (*store.Concept, error) {
	c, ok := m.db.concepts[id]
	if !ok {
		return nil, apperr.NotFound("concept %d", id)
	}
	return &c, nil
}

func (m memConcepts) Create(_ context.Context, c *store.Concept) error {
	c.ID = len(m.db.concepts) + 1
	m.db.concepts[c.ID] = *c
	return nil
}

func (m memConcepts) Count(_ context.Context) (int, error) {
	return len(m.db.concepts), nil
}

type memQuestions struct{ db *memDB }

func (m memQuestions) ListByConcept(_ context.Context, conceptID int) ([]store.Question, error) {
	if m.db.questionErr != nil {
		return nil, m.db.questionErr
	}
	out := []store.Question{}
	for _, q := range m.db.questions {
		if q.ConceptID == conceptID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memQuestions) Get(_ context.Context, id int) (*store.Question, error) {
	if m.db.questionErr != nil {
		return nil, m.db.questionErr
	}
	q, ok := m.db.questions[id]
	if !ok {
		return nil, apperr.NotFound("question %d", id)
	}
	return &q, nil
}

func (m memQuestions) Create(_ context.Context, q *store.Question) error {
	m.db.nextQuestionID++
	q.ID = m.db.nextQuestionID
	m.db.questions[q.ID] = *q
	return nil
}

func (m memQuestions) CountByConcept(ctx context.Context, conceptID int) (int, error) {
	qs, err := m.ListByConcept(ctx, conceptID)
	return len(qs), err
}

type memAttempts struct{ db *memDB }

func (m memAttempts) Create(_ context.Context, a *store.Attempt) error {
	if m.db.attemptErr != nil {
		return m.db.attemptErr
	}
	a.ID = len(m.db.attempts) + 1
	m.db.attempts = append(m.db.attempts, *a)
	return nil
}

func (m memAttempts) ListByUserConcept(_ context.Context, userID, conceptID int) ([]store.Attempt, error) {
	if m.db.attemptErr != nil {
		return nil, m.db.attemptErr
	}
	out := []store.Attempt{}
	for i := len(m.db.attempts) - 1; i >= 0; i-- {
		a := m.db.attempts[i]
		if a.UserID == userID && m.db.questions[a.QuestionID].ConceptID == conceptID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m memAttempts) OutcomesByUserConcept(ctx context.Context, userID, conceptID int) ([]bool, error) {
	attempts, err := m.ListByUserConcept(ctx, userID, conceptID)
	if err != nil {
		return nil, err
	}
	out := make([]bool, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, a.IsCorrect)
	}
	return out, nil
}
