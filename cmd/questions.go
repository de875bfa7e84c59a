package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/orbitrest/internal/catalog"
	"github.com/abhisek/orbitrest/internal/llm"
	"github.com/abhisek/orbitrest/internal/questiongen"
	"github.com/abhisek/orbitrest/internal/quiz"
	"github.com/abhisek/orbitrest/internal/seed"
	"github.com/abhisek/orbitrest/internal/ui/components"
	"github.com/abhisek/orbitrest/internal/ui/theme"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage quiz questions",
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a question bank JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := seed.New(st, logger).ImportQuestions(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions.\n", n)
		return nil
	},
}

var questionsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft new questions for a concept with the configured LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		conceptID, _ := cmd.Flags().GetInt("concept")
		count, _ := cmd.Flags().GetInt("count")
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		concept, err := catalog.NewService(st.ConceptRepo(), st.PlanetRepo()).GetConcept(ctx, conceptID)
		if err != nil {
			return err
		}

		provider, err := llm.NewProvider(ctx, cfg.LLM, logger)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		engine := quiz.NewEngine(st.ConceptRepo(), st.QuestionRepo(), st.AttemptRepo())
		gen := questiongen.New(provider, engine, questiongen.DefaultConfig(), logger)
		report, err := gen.Generate(ctx, *concept, count)
		if report != nil {
			printReport(cmd, report)
		}
		return err
	},
}

func printReport(cmd *cobra.Command, r *questiongen.Report) {
	out := cmd.OutOrStdout()
	for _, q := range r.Created {
		fmt.Fprintln(out, components.QuestionView{
			Question:     q.Question.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectAnswer,
			Difficulty:   string(q.Difficulty),
		}.View())
	}
	for _, s := range r.Skipped {
		fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("skipped %q: %s", s.Draft.Question, s.Reason)))
	}
	fmt.Fprintf(out, "Created %d, skipped %d.\n", len(r.Created), len(r.Skipped))
}

func init() {
	questionsGenerateCmd.Flags().Int("concept", 0, "Concept ID to draft questions for")
	questionsGenerateCmd.Flags().Int("count", 5, fmt.Sprintf("Number of questions (1-%d)", questiongen.MaxBatch))
	_ = questionsGenerateCmd.MarkFlagRequired("concept")

	questionsCmd.AddCommand(questionsImportCmd)
	questionsCmd.AddCommand(questionsGenerateCmd)
}
