package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/catalog"
	"github.com/abhisek/orbitrest/internal/llm"
	"github.com/abhisek/orbitrest/internal/quiz"
)

// MaxBatch caps the number of questions drafted per call.
const MaxBatch = 20

// Config controls a Generator.
type Config struct {
	// Validators run in order; the first failure skips the draft.
	Validators []Validator

	// MaxTokens budgets the whole batch response.
	MaxTokens int

	Temperature float64

	// MaxPriorQuestions bounds how many stored questions are listed in the
	// prompt as already asked.
	MaxPriorQuestions int
}

// DefaultConfig returns the standard validator chain and model settings.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DedupValidator{},
		},
		MaxTokens:         4096,
		Temperature:       0.7,
		MaxPriorQuestions: 30,
	}
}

// Generator drafts questions with an LLM and stores the ones that pass.
type Generator struct {
	provider  llm.Provider
	questions QuestionStore
	config    Config
	logger    *slog.Logger
}

// New creates a Generator. A nil logger uses slog.Default().
func New(provider llm.Provider, questions QuestionStore, cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{provider: provider, questions: questions, config: cfg, logger: logger}
}

// Generate drafts count questions for c. Drafts that fail validation or
// that the quiz engine rejects as invalid are reported in Skipped; the
// rest are stored and returned in Created. A provider or storage failure
// aborts the call and returns what was stored so far.
func (g *Generator) Generate(ctx context.Context, c catalog.Concept, count int) (*Report, error) {
	if count < 1 || count > MaxBatch {
		return nil, apperr.Invalid("count must be between 1 and %d", MaxBatch)
	}

	stored, err := g.questions.ListQuestions(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	in := Input{Concept: c, Existing: make(map[string]bool, len(stored)+count)}
	prior := make([]string, 0, len(stored))
	for _, q := range stored {
		in.Existing[normalizeText(q.Question)] = true
		prior = append(prior, q.Question)
	}

	req := llm.UserPrompt(systemPrompt, buildUserMessage(c, count, prior, g.config.MaxPriorQuestions), BatchSchema, g.config.MaxTokens)
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "question-gen"), req)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse generated questions: %w", err)
	}

	report := &Report{}
	for _, d := range out.Questions {
		if len(report.Created) == count {
			report.Skipped = append(report.Skipped, Skipped{Draft: d, Reason: "over requested count"})
			continue
		}
		if verr := g.validate(&d, in); verr != nil {
			g.logger.Debug("draft rejected", "concept_id", c.ID, "validator", verr.Validator, "reason", verr.Message)
			report.Skipped = append(report.Skipped, Skipped{Draft: d, Reason: verr.Error()})
			continue
		}

		q, err := g.questions.CreateQuestion(ctx, quiz.NewQuestion{
			ConceptID:     c.ID,
			Question:      d.Question,
			Options:       d.Options,
			CorrectAnswer: d.CorrectAnswer,
			Explanation:   d.Explanation,
			Difficulty:    d.Difficulty,
		})
		if errors.Is(err, apperr.ErrInvalidInput) {
			report.Skipped = append(report.Skipped, Skipped{Draft: d, Reason: err.Error()})
			continue
		}
		if err != nil {
			return report, fmt.Errorf("store question: %w", err)
		}
		in.Existing[normalizeText(d.Question)] = true
		report.Created = append(report.Created, *q)
	}

	g.logger.Info("questions generated",
		"concept_id", c.ID, "requested", count,
		"created", len(report.Created), "skipped", len(report.Skipped))
	return report, nil
}

func (g *Generator) validate(d *Draft, in Input) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(d, in); verr != nil {
			return verr
		}
	}
	return nil
}
