package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute every lead score with the configured weights",
	Long: `Recomputes lead_score for all leads, active or not.
Use after changing SCORING_CONFIG so listings sort on the new weights.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore()
		if err != nil {
			return err
		}
		n, err := s.Rescore(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d leads rescored\n", n)
		return nil
	},
}
