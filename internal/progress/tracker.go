// Package progress records per-user completion of concepts.
package progress

import (
	"context"
	"time"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/store"
)

// Progress is a user's state for one concept. CompletedAt is non-nil
// exactly when Completed is true.
type Progress struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	ConceptID   int        `json:"conceptId"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	Notes       *string    `json:"notes"`
}

// Patch is a partial update. Nil fields keep their stored value. A JSON
// null decodes to nil, so notes can be replaced (including with "") but
// never reset to null once set.
type Patch struct {
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes"`
}

// Tracker applies patches to progress rows.
type Tracker struct {
	concepts store.ConceptRepo
	progress store.ProgressRepo
	now      func() time.Time
}

// NewTracker creates a progress tracker.
func NewTracker(concepts store.ConceptRepo, progress store.ProgressRepo) *Tracker {
	return &Tracker{concepts: concepts, progress: progress, now: time.Now}
}

// Upsert merges patch into the (userID, conceptID) row, creating it from
// defaults when absent. Completing stamps CompletedAt with the current time
// unless the row was already complete; un-completing clears it.
func (t *Tracker) Upsert(ctx context.Context, userID, conceptID int, patch Patch) (*Progress, error) {
	if _, err := t.concepts.Get(ctx, conceptID); err != nil {
		return nil, apperr.Storage("get concept", err)
	}

	existing, err := t.progress.Get(ctx, userID, conceptID)
	if err != nil {
		return nil, apperr.Storage("get progress", err)
	}

	rec := store.Progress{UserID: userID, ConceptID: conceptID}
	if existing != nil {
		rec = *existing
	}
	wasCompleted := rec.Completed && rec.CompletedAt != nil

	if patch.Completed != nil {
		rec.Completed = *patch.Completed
	}
	if patch.Notes != nil {
		notes := *patch.Notes
		rec.Notes = &notes
	}

	switch {
	case !rec.Completed:
		rec.CompletedAt = nil
	case !wasCompleted:
		now := t.now().UTC()
		rec.CompletedAt = &now
	}

	if err := t.progress.Upsert(ctx, &rec); err != nil {
		return nil, apperr.Storage("upsert progress", err)
	}
	p := fromRecord(rec)
	return &p, nil
}

// Get returns every progress row of userID ordered by concept id.
func (t *Tracker) Get(ctx context.Context, userID int) ([]Progress, error) {
	records, err := t.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("list progress", err)
	}
	out := make([]Progress, 0, len(records))
	for _, r := range records {
		out = append(out, fromRecord(r))
	}
	return out, nil
}

func fromRecord(r store.Progress) Progress {
	return Progress(r)
}
