package cmd

import (
	"lead-capture-backend/db"
	"lead-capture-backend/utils"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		if err := db.Migrate(conn); err != nil {
			return err
		}
		utils.LogSuccess("Migration completed")
		return nil
	},
}
