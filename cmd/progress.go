package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/orbitrest/internal/catalog"
	"github.com/abhisek/orbitrest/internal/progress"
	"github.com/abhisek/orbitrest/internal/quiz"
	"github.com/abhisek/orbitrest/internal/ui/components"
	"github.com/abhisek/orbitrest/internal/ui/theme"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show a learner's quiz scores and completed concepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("user")
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		u, err := st.UserRepo().GetByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("user %q: %w", username, err)
		}

		concepts, err := catalog.NewService(st.ConceptRepo(), st.PlanetRepo()).ListConcepts(ctx)
		if err != nil {
			return err
		}
		rows, err := progress.NewTracker(st.ConceptRepo(), st.ProgressRepo()).Get(ctx, u.ID)
		if err != nil {
			return err
		}
		completed := make(map[int]bool, len(rows))
		for _, r := range rows {
			completed[r.ConceptID] = r.Completed
		}

		engine := quiz.NewEngine(st.ConceptRepo(), st.QuestionRepo(), st.AttemptRepo())
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render("Progress for "+u.Username))
		for _, c := range concepts {
			sum, err := engine.GetProgressSummary(ctx, u.ID, c.ID)
			if err != nil {
				return err
			}
			line := components.MethodBadge(c.Method) + " " +
				components.NewProgressBar(c.Title, sum.Percent(), true, 60).View() +
				theme.Muted.Render(fmt.Sprintf("  %d/%d", sum.CorrectAttempts, sum.TotalAttempts))
			if completed[c.ID] {
				line += " " + theme.Correct.Render("✓")
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	progressCmd.Flags().String("user", "", "Username to report on")
	_ = progressCmd.MarkFlagRequired("user")
}
