// Package cmd wires configuration, storage and the HTTP server behind a cobra CLI.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"lead-capture-backend/config"
	"lead-capture-backend/db"
	"lead-capture-backend/scoring"
	"lead-capture-backend/store"
	"lead-capture-backend/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "lead-capture",
	Short: "Lead capture backend for Chiral Robotics",
	Long: `Captures website leads, scores them, notifies sales and syncs them to the CRM.

Run "lead-capture serve" to start the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var envLoaded bool
		cfg, envLoaded = config.Load()
		utils.InitLogger(cfg.LogLevel, cfg.LogFile)
		if !envLoaded {
			utils.Logger.Debug("No .env file found, using process environment")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, rescoreCmd, tokenCmd, crmSyncCmd)
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var errNoDatabase = errors.New("DB_URL is not set")

func openDB() (*gorm.DB, error) {
	if cfg.DBURL == "" {
		return nil, errNoDatabase
	}
	return db.Open(cfg.DBURL)
}

func openStore() (*store.Store, *gorm.DB, error) {
	conn, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	table, err := scoring.LoadTable(cfg.ScoringConfig)
	if err != nil {
		return nil, nil, err
	}
	if cfg.ScoringConfig != "" {
		utils.Logger.WithFields(logrus.Fields{"file": cfg.ScoringConfig}).Info("Scoring weights loaded")
	}
	return store.New(conn, table), conn, nil
}
