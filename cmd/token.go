package cmd

import (
	"errors"
	"fmt"

	"lead-capture-backend/utils"

	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenHours   int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an admin JWT for the back-office API",
	Long: `Signs an HS256 token with JWT_SECRET carrying role=ADMIN.

Example:
  lead-capture token --subject ops@chiral-robotics.com --hours 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenHours < 1 {
			return errors.New("--hours must be at least 1")
		}
		token, err := utils.GenerateAdminJWT(cfg.JWTSecret, tokenSubject, tokenHours)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "token subject, recorded as author of notes")
	tokenCmd.Flags().IntVar(&tokenHours, "hours", 24, "validity in hours")
}
