package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/orbitrest/internal/catalog"
	"github.com/abhisek/orbitrest/internal/ui/components"
	"github.com/abhisek/orbitrest/internal/ui/theme"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "List the REST concepts and their question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		concepts, err := catalog.NewService(st.ConceptRepo(), st.PlanetRepo()).ListConcepts(ctx)
		if err != nil {
			return err
		}
		if len(concepts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No concepts found. Run `orbitrest seed` first.")
			return nil
		}

		out := cmd.OutOrStdout()
		for _, c := range concepts {
			n, err := st.QuestionRepo().CountByConcept(ctx, c.ID)
			if err != nil {
				return fmt.Errorf("count questions: %w", err)
			}
			fmt.Fprintln(out, components.ConceptCard(c, width))
			fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("  #%d · %d quiz questions", c.ID, n)))
		}
		return nil
	},
}

func init() {
	conceptsCmd.Flags().Int("width", 72, "Card width in columns")
}
