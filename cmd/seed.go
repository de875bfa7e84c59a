package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/orbitrest/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default concepts, planets and questions",
	Long:  "Inserts the built-in data into empty tables. Running it again is a no-op.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := seed.New(st, logger).Seed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d concepts, %d planets, %d questions.\n",
			res.Concepts, res.Planets, res.Questions)
		return nil
	},
}
