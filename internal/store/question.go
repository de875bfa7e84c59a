package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/orbitrest/internal/apperr"
)

var questionColumns = []string{"id", "concept_id", "question", "options", "correct_answer", "explanation", "difficulty"}

// questionRepo implements QuestionRepo with the ent SQL builder. Options
// are stored as a JSON array.
type questionRepo struct {
	s *Store
}

func scanQuestion(row rowScanner) (Question, error) {
	var (
		q    Question
		opts []byte
	)
	if err := row.Scan(&q.ID, &q.ConceptID, &q.Text, &opts, &q.CorrectAnswer, &q.Explanation, &q.Difficulty); err != nil {
		return Question{}, err
	}
	if err := json.Unmarshal(opts, &q.Options); err != nil {
		return Question{}, fmt.Errorf("decode options of question %d: %w", q.ID, err)
	}
	return q, nil
}

func (r *questionRepo) ListByConcept(ctx context.Context, conceptID int) ([]Question, error) {
	b := r.s.builder()
	q := b.Select(questionColumns...).From(b.Table(questionsTable)).
		Where(entsql.EQ("concept_id", conceptID)).
		OrderBy("id")
	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	questions := []Question{}
	for rows.Next() {
		qq, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, qq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepo) Get(ctx context.Context, id int) (*Question, error) {
	b := r.s.builder()
	q := b.Select(questionColumns...).From(b.Table(questionsTable)).Where(entsql.EQ("id", id))
	qq, err := scanQuestion(r.s.queryRow(ctx, q))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("question %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query question %d: %w", id, err)
	}
	return &qq, nil
}

func (r *questionRepo) Create(ctx context.Context, qq *Question) error {
	opts, err := json.Marshal(qq.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	q := r.s.builder().Insert(questionsTable).
		Columns("concept_id", "question", "options", "correct_answer", "explanation", "difficulty").
		Values(qq.ConceptID, qq.Text, string(opts), qq.CorrectAnswer, qq.Explanation, qq.Difficulty).
		Returning("id")
	if err := r.s.queryRow(ctx, q).Scan(&qq.ID); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (r *questionRepo) CountByConcept(ctx context.Context, conceptID int) (int, error) {
	n, err := r.s.count(ctx, questionsTable, entsql.EQ("concept_id", conceptID))
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}
