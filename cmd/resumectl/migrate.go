package main

import (
	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the user_data and user_feedback tables",
	RunE: func(_ *cobra.Command, _ []string) error {
		log := newLogger()
		defer log.Sync()

		db, err := database.Connect(config.LoadDBConfig(), config.LoadAppConfig(), log)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("migration complete")
		return nil
	},
}
