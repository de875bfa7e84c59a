package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// PostgreSQL driver registered as "pgx".
	_ "github.com/jackc/pgx/v4/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db      *sql.DB
	drv     *entsql.Driver
	dialect string
}

// Open connects to the database at dsn and creates or migrates the schema.
// DSNs starting with postgres:// or postgresql:// use PostgreSQL; anything
// else is treated as a SQLite path or URI.
func Open(dsn string) (*Store, error) {
	driverName, dialectName := "sqlite", dialect.SQLite
	if isPostgres(dsn) {
		driverName, dialectName = "pgx", dialect.Postgres
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dialectName == dialect.SQLite {
		// One connection: pragmas stick and writers serialize in the driver.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	drv := entsql.OpenDB(dialectName, db)
	s := &Store{db: db, drv: drv, dialect: dialectName}

	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name in use ("sqlite3" or "postgres").
func (s *Store) Dialect() string {
	return s.dialect
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// ConceptRepo returns a ConceptRepo backed by this store.
func (s *Store) ConceptRepo() ConceptRepo {
	return &conceptRepo{s: s}
}

// PlanetRepo returns a PlanetRepo backed by this store.
func (s *Store) PlanetRepo() PlanetRepo {
	return &planetRepo{s: s}
}

// UserRepo returns a UserRepo backed by this store.
func (s *Store) UserRepo() UserRepo {
	return &userRepo{s: s}
}

// ProgressRepo returns a ProgressRepo backed by this store.
func (s *Store) ProgressRepo() ProgressRepo {
	return &progressRepo{s: s}
}

// QuestionRepo returns a QuestionRepo backed by this store.
func (s *Store) QuestionRepo() QuestionRepo {
	return &questionRepo{s: s}
}

// AttemptRepo returns an AttemptRepo backed by this store.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{s: s}
}

// builder returns an ent SQL builder for the store's dialect.
func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

func (s *Store) query(ctx context.Context, q entsql.Querier) (*sql.Rows, error) {
	query, args := q.Query()
	return s.db.QueryContext(ctx, query, args...)
}

func (s *Store) queryRow(ctx context.Context, q entsql.Querier) *sql.Row {
	query, args := q.Query()
	return s.db.QueryRowContext(ctx, query, args...)
}

func (s *Store) exec(ctx context.Context, q entsql.Querier) (sql.Result, error) {
	query, args := q.Query()
	return s.db.ExecContext(ctx, query, args...)
}

// count runs SELECT COUNT(*) against table filtered by pred (nil for all rows).
func (s *Store) count(ctx context.Context, table string, pred *entsql.Predicate) (int, error) {
	b := s.builder()
	sel := b.Select(entsql.Count("*")).From(b.Table(table))
	if pred != nil {
		sel.Where(pred)
	}
	var n int
	if err := s.queryRow(ctx, sel).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// applyPragmas configures SQLite for a small multi-reader server.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// DefaultDBPath resolves the database location in priority order:
// 1. ORBITREST_DB environment variable
// 2. $XDG_DATA_HOME/orbitrest/orbitrest.db
// 3. ~/.local/share/orbitrest/orbitrest.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ORBITREST_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "orbitrest", "orbitrest.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of a SQLite path if it doesn't
// exist. PostgreSQL DSNs are left alone.
func EnsureDir(path string) error {
	if isPostgres(path) || strings.HasPrefix(path, "file:") || path == ":memory:" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
