package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/orbitrest/internal/apperr"
)

var conceptColumns = []string{"id", "title", "description", "method", "example"}

// conceptRepo implements ConceptRepo with the ent SQL builder.
type conceptRepo struct {
	s *Store
}

func (r *conceptRepo) List(ctx context.Context) ([]Concept, error) {
	b := r.s.builder()
	q := b.Select(conceptColumns...).From(b.Table(conceptsTable)).OrderBy("id")
	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query concepts: %w", err)
	}
	defer rows.Close()

	concepts := []Concept{}
	for rows.Next() {
		var c Concept
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Method, &c.Example); err != nil {
			return nil, fmt.Errorf("scan concept: %w", err)
		}
		concepts = append(concepts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate concepts: %w", err)
	}
	return concepts, nil
}

func (r *conceptRepo) Get(ctx context.Context, id int) (*Concept, error) {
	b := r.s.builder()
	q := b.Select(conceptColumns...).From(b.Table(conceptsTable)).Where(entsql.EQ("id", id))

	var c Concept
	err := r.s.queryRow(ctx, q).Scan(&c.ID, &c.Title, &c.Description, &c.Method, &c.Example)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("concept %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query concept %d: %w", id, err)
	}
	return &c, nil
}

func (r *conceptRepo) Create(ctx context.Context, c *Concept) error {
	q := r.s.builder().Insert(conceptsTable).
		Columns("title", "description", "method", "example").
		Values(c.Title, c.Description, c.Method, c.Example).
		Returning("id")
	if err := r.s.queryRow(ctx, q).Scan(&c.ID); err != nil {
		return fmt.Errorf("insert concept: %w", err)
	}
	return nil
}

func (r *conceptRepo) Count(ctx context.Context) (int, error) {
	n, err := r.s.count(ctx, conceptsTable, nil)
	if err != nil {
		return 0, fmt.Errorf("count concepts: %w", err)
	}
	return n, nil
}
