package cmd

import (
	"fmt"

	"country-api/core/config"
	"country-api/core/database"
	"country-api/core/logger"
	"country-api/feature/countries"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or verifies the schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Auto-migrates the countries table and verifies that every required column exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
		defer database.Close(db)

		if err := countries.Migrate(db); err != nil {
			return err
		}

		logg.Info("Schema is up to date",
			zap.String("driver", cfg.Database.Driver),
			zap.String("database", cfg.Database.Name),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
