package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var progressColumns = []string{"id", "user_id", "concept_id", "completed", "completed_at", "notes"}

// progressRepo implements ProgressRepo with the ent SQL builder.
type progressRepo struct {
	s *Store
}

func scanProgress(row rowScanner) (Progress, error) {
	var (
		p           Progress
		completedAt sql.NullTime
		notes       sql.NullString
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.ConceptID, &p.Completed, &completedAt, &notes); err != nil {
		return Progress{}, err
	}
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		p.CompletedAt = &t
	}
	if notes.Valid {
		n := notes.String
		p.Notes = &n
	}
	return p, nil
}

func (r *progressRepo) Get(ctx context.Context, userID, conceptID int) (*Progress, error) {
	b := r.s.builder()
	q := b.Select(progressColumns...).From(b.Table(progressTable)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("concept_id", conceptID)))
	p, err := scanProgress(r.s.queryRow(ctx, q))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	return &p, nil
}

func (r *progressRepo) ListByUser(ctx context.Context, userID int) ([]Progress, error) {
	b := r.s.builder()
	q := b.Select(progressColumns...).From(b.Table(progressTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("concept_id")
	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	list := []Progress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return list, nil
}

func (r *progressRepo) Upsert(ctx context.Context, p *Progress) error {
	var completedAt, notes any
	if p.CompletedAt != nil {
		completedAt = p.CompletedAt.UTC()
	}
	if p.Notes != nil {
		notes = *p.Notes
	}

	q := r.s.builder().Insert(progressTable).
		Columns("user_id", "concept_id", "completed", "completed_at", "notes").
		Values(p.UserID, p.ConceptID, p.Completed, completedAt, notes).
		OnConflict(
			entsql.ConflictColumns("user_id", "concept_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("completed")
				u.SetExcluded("completed_at")
				u.SetExcluded("notes")
			}),
		).
		Returning("id")
	if err := r.s.queryRow(ctx, q).Scan(&p.ID); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}
