package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// attemptRepo implements AttemptRepo with the ent SQL builder. Rows are
// never updated or deleted.
type attemptRepo struct {
	s *Store
}

func (r *attemptRepo) Create(ctx context.Context, a *Attempt) error {
	q := r.s.builder().Insert(attemptsTable).
		Columns("user_id", "question_id", "selected_answer", "is_correct", "attempted_at").
		Values(a.UserID, a.QuestionID, a.SelectedAnswer, a.IsCorrect, a.AttemptedAt.UTC()).
		Returning("id")
	if err := r.s.queryRow(ctx, q).Scan(&a.ID); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// byUserConcept selects attempts of userID joined to the questions of
// conceptID.
func (r *attemptRepo) byUserConcept(userID, conceptID int, columns func(a *entsql.SelectTable) []string) *entsql.Selector {
	b := r.s.builder()
	a := b.Table(attemptsTable)
	qt := b.Table(questionsTable)
	return b.Select(columns(a)...).
		From(a).
		Join(qt).On(a.C("question_id"), qt.C("id")).
		Where(entsql.And(
			entsql.EQ(a.C("user_id"), userID),
			entsql.EQ(qt.C("concept_id"), conceptID),
		))
}

func (r *attemptRepo) ListByUserConcept(ctx context.Context, userID, conceptID int) ([]Attempt, error) {
	var idCol string
	q := r.byUserConcept(userID, conceptID, func(a *entsql.SelectTable) []string {
		idCol = a.C("id")
		return []string{
			a.C("id"), a.C("user_id"), a.C("question_id"),
			a.C("selected_answer"), a.C("is_correct"), a.C("attempted_at"),
		}
	})
	q.OrderBy(idCol + " DESC")

	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	attempts := []Attempt{}
	for rows.Next() {
		var at Attempt
		if err := rows.Scan(&at.ID, &at.UserID, &at.QuestionID, &at.SelectedAnswer, &at.IsCorrect, &at.AttemptedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		at.AttemptedAt = at.AttemptedAt.UTC()
		attempts = append(attempts, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}

func (r *attemptRepo) OutcomesByUserConcept(ctx context.Context, userID, conceptID int) ([]bool, error) {
	q := r.byUserConcept(userID, conceptID, func(a *entsql.SelectTable) []string {
		return []string{a.C("is_correct")}
	})

	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query attempt outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []bool{}
	for rows.Next() {
		var ok bool
		if err := rows.Scan(&ok); err != nil {
			return nil, fmt.Errorf("scan attempt outcome: %w", err)
		}
		outcomes = append(outcomes, ok)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt outcomes: %w", err)
	}
	return outcomes, nil
}
