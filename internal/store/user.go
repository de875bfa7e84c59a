package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"

	"github.com/abhisek/orbitrest/internal/apperr"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at"}

// userRepo implements UserRepo with the ent SQL builder.
type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u *User) error {
	q := r.s.builder().Insert(usersTable).
		Columns("username", "email", "password_hash", "created_at").
		Values(u.Username, u.Email, u.PasswordHash, u.CreatedAt).
		Returning("id")
	if err := r.s.queryRow(ctx, q).Scan(&u.ID); err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return apperr.Conflict("username or email already registered")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) Get(ctx context.Context, id int) (*User, error) {
	u, err := r.getBy(ctx, entsql.EQ("id", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query user %d: %w", id, err)
	}
	return u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := r.getBy(ctx, entsql.EQ("username", username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user %q", username)
	}
	if err != nil {
		return nil, fmt.Errorf("query user %q: %w", username, err)
	}
	return u, nil
}

func (r *userRepo) getBy(ctx context.Context, pred *entsql.Predicate) (*User, error) {
	b := r.s.builder()
	q := b.Select(userColumns...).From(b.Table(usersTable)).Where(pred)

	var u User
	if err := r.s.queryRow(ctx, q).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
