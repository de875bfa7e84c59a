package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/orbitrest/internal/apperr"
)

var planetColumns = []string{"id", "name", "description", "type", "distance_from_sun", "image_url"}

// planetRepo implements PlanetRepo with the ent SQL builder.
type planetRepo struct {
	s *Store
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlanet(row rowScanner) (Planet, error) {
	var p Planet
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.DistanceFromSun, &p.ImageURL)
	return p, err
}

func (r *planetRepo) List(ctx context.Context, typ string) ([]Planet, error) {
	b := r.s.builder()
	q := b.Select(planetColumns...).From(b.Table(planetsTable)).OrderBy("id")
	if typ != "" {
		q.Where(entsql.EqualFold("type", typ))
	}
	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query planets: %w", err)
	}
	defer rows.Close()

	planets := []Planet{}
	for rows.Next() {
		p, err := scanPlanet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan planet: %w", err)
		}
		planets = append(planets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate planets: %w", err)
	}
	return planets, nil
}

func (r *planetRepo) Get(ctx context.Context, id int) (*Planet, error) {
	b := r.s.builder()
	q := b.Select(planetColumns...).From(b.Table(planetsTable)).Where(entsql.EQ("id", id))
	p, err := scanPlanet(r.s.queryRow(ctx, q))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("planet %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query planet %d: %w", id, err)
	}
	return &p, nil
}

func (r *planetRepo) Create(ctx context.Context, p *Planet) error {
	q := r.s.builder().Insert(planetsTable).
		Columns("name", "description", "type", "distance_from_sun", "image_url").
		Values(p.Name, p.Description, p.Type, p.DistanceFromSun, p.ImageURL).
		Returning("id")
	if err := r.s.queryRow(ctx, q).Scan(&p.ID); err != nil {
		return fmt.Errorf("insert planet: %w", err)
	}
	return nil
}

func (r *planetRepo) Update(ctx context.Context, p *Planet) error {
	q := r.s.builder().Update(planetsTable).
		Set("name", p.Name).
		Set("description", p.Description).
		Set("type", p.Type).
		Set("distance_from_sun", p.DistanceFromSun).
		Set("image_url", p.ImageURL).
		Where(entsql.EQ("id", p.ID))
	res, err := r.s.exec(ctx, q)
	if err != nil {
		return fmt.Errorf("update planet %d: %w", p.ID, err)
	}
	return requireAffected(res, "planet", p.ID)
}

func (r *planetRepo) Delete(ctx context.Context, id int) error {
	q := r.s.builder().Delete(planetsTable).Where(entsql.EQ("id", id))
	res, err := r.s.exec(ctx, q)
	if err != nil {
		return fmt.Errorf("delete planet %d: %w", id, err)
	}
	return requireAffected(res, "planet", id)
}

func (r *planetRepo) Count(ctx context.Context) (int, error) {
	n, err := r.s.count(ctx, planetsTable, nil)
	if err != nil {
		return 0, fmt.Errorf("count planets: %w", err)
	}
	return n, nil
}

// requireAffected turns a zero-row UPDATE or DELETE into a NotFound.
func requireAffected(res sql.Result, what string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("%s %d", what, id)
	}
	return nil
}
