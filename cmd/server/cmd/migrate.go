package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"telemim/internal/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Миграции схемы PostgreSQL",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Применить все миграции",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := requireDatabase(); err != nil {
			return err
		}
		if err := migration.NewMigration(cfg.DB, migration.DefaultEngine).Up(); err != nil {
			return err
		}
		color.Green("✓ миграции применены")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Откатить все миграции",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := requireDatabase(); err != nil {
			return err
		}
		if err := migration.NewMigration(cfg.DB, migration.DefaultEngine).Down(); err != nil {
			return err
		}
		color.Yellow("✓ миграции откачены")
		return nil
	},
}

func requireDatabase() error {
	if cfg.DB.DatabaseURI == "" {
		return errors.New("DATABASE_URI не задан")
	}
	return nil
}
