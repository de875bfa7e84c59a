// Package seed loads the built-in REST concepts, planets and starter
// questions, and imports question banks from JSON.
package seed

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/catalog"
	"github.com/abhisek/orbitrest/internal/quiz"
	"github.com/abhisek/orbitrest/internal/store"
)

//go:embed data/*.json
var data embed.FS

// Result counts the rows a call inserted.
type Result struct {
	Concepts  int
	Planets   int
	Questions int
}

// Seeder writes default and imported data.
type Seeder struct {
	concepts  store.ConceptRepo
	planets   store.PlanetRepo
	questions store.QuestionRepo
	catalog   *catalog.Service
	engine    *quiz.Engine
	logger    *slog.Logger
}

// New creates a Seeder over st. A nil logger uses slog.Default().
func New(st *store.Store, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		concepts:  st.ConceptRepo(),
		planets:   st.PlanetRepo(),
		questions: st.QuestionRepo(),
		catalog:   catalog.NewService(st.ConceptRepo(), st.PlanetRepo()),
		engine:    quiz.NewEngine(st.ConceptRepo(), st.QuestionRepo(), st.AttemptRepo()),
		logger:    logger,
	}
}

// Seed inserts the built-in data. Concepts and planets go only into empty
// tables; starter questions go only to concepts that have none. Running it
// again is a no-op.
func (s *Seeder) Seed(ctx context.Context) (Result, error) {
	var res Result

	n, err := s.seedConcepts(ctx)
	if err != nil {
		return res, err
	}
	res.Concepts = n

	if n, err = s.seedPlanets(ctx); err != nil {
		return res, err
	}
	res.Planets = n

	if n, err = s.seedQuestions(ctx); err != nil {
		return res, err
	}
	res.Questions = n

	s.logger.Info("seed complete", "concepts", res.Concepts, "planets", res.Planets, "questions", res.Questions)
	return res, nil
}

func (s *Seeder) seedConcepts(ctx context.Context) (int, error) {
	count, err := s.concepts.Count(ctx)
	if err != nil {
		return 0, apperr.Storage("count concepts", err)
	}
	if count > 0 {
		return 0, nil
	}

	var concepts []catalog.Concept
	if err := readEmbedded("data/concepts.json", &concepts); err != nil {
		return 0, err
	}
	for _, c := range concepts {
		m, err := catalog.ParseMethod(string(c.Method))
		if err != nil {
			return 0, fmt.Errorf("seed concept %q: %w", c.Title, err)
		}
		rec := &store.Concept{Title: c.Title, Description: c.Description, Method: m.String(), Example: c.Example}
		if err := s.concepts.Create(ctx, rec); err != nil {
			return 0, apperr.Storage("create concept", err)
		}
	}
	return len(concepts), nil
}

func (s *Seeder) seedPlanets(ctx context.Context) (int, error) {
	count, err := s.planets.Count(ctx)
	if err != nil {
		return 0, apperr.Storage("count planets", err)
	}
	if count > 0 {
		return 0, nil
	}

	var planets []catalog.PlanetInput
	if err := readEmbedded("data/planets.json", &planets); err != nil {
		return 0, err
	}
	for _, p := range planets {
		if _, err := s.catalog.CreatePlanet(ctx, p); err != nil {
			return 0, fmt.Errorf("seed planet %q: %w", p.Name, err)
		}
	}
	return len(planets), nil
}

func (s *Seeder) seedQuestions(ctx context.Context) (int, error) {
	raw, err := data.ReadFile("data/questions.json")
	if err != nil {
		return 0, fmt.Errorf("read embedded questions: %w", err)
	}
	entries, err := ParseBank(bytes.NewReader(raw))
	if err != nil {
		return 0, err
	}

	// Decide per concept before inserting so a concept is filled completely
	// or not at all.
	empty := map[int]bool{}
	resolved, err := s.resolve(ctx, entries)
	if err != nil {
		return 0, err
	}
	for _, c := range resolved {
		if _, seen := empty[c.ID]; seen {
			continue
		}
		n, err := s.questions.CountByConcept(ctx, c.ID)
		if err != nil {
			return 0, apperr.Storage("count questions", err)
		}
		empty[c.ID] = n == 0
	}

	created := 0
	for i, e := range entries {
		c := resolved[i]
		if !empty[c.ID] {
			continue
		}
		if _, err := s.engine.CreateQuestion(ctx, newQuestion(c.ID, e)); err != nil {
			return created, fmt.Errorf("seed question %d: %w", i, err)
		}
		created++
	}
	return created, nil
}

// ImportQuestions validates a bank document from r, resolves each entry's
// concept by method and stores the questions. Every concept is resolved
// before anything is written; the count of stored questions is returned
// even on a later failure.
func (s *Seeder) ImportQuestions(ctx context.Context, r io.Reader) (int, error) {
	entries, err := ParseBank(r)
	if err != nil {
		return 0, err
	}
	resolved, err := s.resolve(ctx, entries)
	if err != nil {
		return 0, err
	}

	created := 0
	for i, e := range entries {
		if _, err := s.engine.CreateQuestion(ctx, newQuestion(resolved[i].ID, e)); err != nil {
			return created, fmt.Errorf("import question %d: %w", i, err)
		}
		created++
	}
	s.logger.Info("questions imported", "count", created)
	return created, nil
}

// resolve maps every entry to its concept, caching lookups by method.
func (s *Seeder) resolve(ctx context.Context, entries []BankEntry) ([]*catalog.Concept, error) {
	byMethod := map[catalog.Method]*catalog.Concept{}
	out := make([]*catalog.Concept, len(entries))
	for i, e := range entries {
		m, err := catalog.ParseMethod(e.Method)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		c, ok := byMethod[m]
		if !ok {
			if c, err = s.catalog.ConceptByMethod(ctx, m); err != nil {
				return nil, fmt.Errorf("question %d: %w", i, err)
			}
			byMethod[m] = c
		}
		out[i] = c
	}
	return out, nil
}

func newQuestion(conceptID int, e BankEntry) quiz.NewQuestion {
	return quiz.NewQuestion{
		ConceptID:     conceptID,
		Question:      e.Question,
		Options:       e.Options,
		CorrectAnswer: e.CorrectAnswer,
		Explanation:   e.Explanation,
		Difficulty:    e.Difficulty,
	}
}

func readEmbedded(name string, v any) error {
	raw, err := data.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read embedded %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse embedded %s: %w", name, err)
	}
	return nil
}
