package store

import (
	"context"
	"time"
)

// Concept is one REST method lesson. Rows are written by seeding only.
type Concept struct {
	ID          int
	Title       string
	Description string
	Method      string
	Example     string
}

// Planet is the mutable demo resource used by the CRUD tutorial.
type Planet struct {
	ID              int
	Name            string
	Description     string
	Type            string
	DistanceFromSun int
	ImageURL        string
}

// User is a registered account.
type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Progress is a user's completion state for one concept. At most one row
// exists per (UserID, ConceptID).
type Progress struct {
	ID          int
	UserID      int
	ConceptID   int
	Completed   bool
	CompletedAt *time.Time
	Notes       *string
}

// Question is a stored multiple-choice question including its answer key.
type Question struct {
	ID            int
	ConceptID     int
	Text          string
	Options       []string
	CorrectAnswer int
	Explanation   string
	Difficulty    string
}

// Attempt is one recorded answer submission.
type Attempt struct {
	ID             int
	UserID         int
	QuestionID     int
	SelectedAnswer int
	IsCorrect      bool
	AttemptedAt    time.Time
}

// ConceptRepo reads the concept catalog.
type ConceptRepo interface {
	// List returns all concepts ordered by id.
	List(ctx context.Context) ([]Concept, error)

	// Get returns the concept with id, or an apperr.ErrNotFound error.
	Get(ctx context.Context, id int) (*Concept, error)

	// Create inserts c and sets c.ID.
	Create(ctx context.Context, c *Concept) error

	// Count returns the number of concepts.
	Count(ctx context.Context) (int, error)
}

// PlanetRepo manages planets.
type PlanetRepo interface {
	// List returns planets ordered by id. A non-empty typ keeps only
	// planets whose type matches case-insensitively.
	List(ctx context.Context, typ string) ([]Planet, error)

	// Get returns the planet with id, or an apperr.ErrNotFound error.
	Get(ctx context.Context, id int) (*Planet, error)

	// Create inserts p and sets p.ID.
	Create(ctx context.Context, p *Planet) error

	// Update overwrites every column of the row with p.ID.
	Update(ctx context.Context, p *Planet) error

	// Delete removes the planet with id.
	Delete(ctx context.Context, id int) error

	// Count returns the number of planets.
	Count(ctx context.Context) (int, error)
}

// UserRepo manages accounts.
type UserRepo interface {
	// Create inserts u and sets u.ID. A taken username or email yields an
	// apperr.ErrConflict error.
	Create(ctx context.Context, u *User) error

	// Get returns the user with id, or an apperr.ErrNotFound error.
	Get(ctx context.Context, id int) (*User, error)

	// GetByUsername returns the user named username, or an
	// apperr.ErrNotFound error.
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// ProgressRepo stores per-user concept progress.
type ProgressRepo interface {
	// Get returns the row for (userID, conceptID), or nil if none exists.
	Get(ctx context.Context, userID, conceptID int) (*Progress, error)

	// ListByUser returns all rows of userID ordered by concept id.
	ListByUser(ctx context.Context, userID int) ([]Progress, error)

	// Upsert inserts p or, when a row for (p.UserID, p.ConceptID) already
	// exists, overwrites its completed, completed_at and notes columns in
	// the same statement. p.ID is set to the row's id.
	Upsert(ctx context.Context, p *Progress) error
}

// QuestionRepo stores quiz questions.
type QuestionRepo interface {
	// ListByConcept returns the questions of conceptID ordered by id.
	ListByConcept(ctx context.Context, conceptID int) ([]Question, error)

	// Get returns the question with id, or an apperr.ErrNotFound error.
	Get(ctx context.Context, id int) (*Question, error)

	// Create inserts q and sets q.ID.
	Create(ctx context.Context, q *Question) error

	// CountByConcept returns the number of questions for conceptID.
	CountByConcept(ctx context.Context, conceptID int) (int, error)
}

// AttemptRepo is the append-only attempt log.
type AttemptRepo interface {
	// Create appends a and sets a.ID.
	Create(ctx context.Context, a *Attempt) error

	// ListByUserConcept returns the attempts of userID on questions of
	// conceptID, newest first.
	ListByUserConcept(ctx context.Context, userID, conceptID int) ([]Attempt, error)

	// OutcomesByUserConcept returns the is_correct flag of every attempt
	// by userID on questions of conceptID.
	OutcomesByUserConcept(ctx context.Context, userID, conceptID int) ([]bool, error)
}
