package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/renovation_backoffice/internal/platform/config"
	"github.com/SscSPs/renovation_backoffice/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := postgresConfig()
			if err != nil {
				return err
			}
			applied, err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath)
			if err != nil {
				return err
			}
			slog.Info("Migrate up finished", slog.Bool("applied", applied))
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := postgresConfig()
			if err != nil {
				return err
			}
			applied, err := database.MigrateDown(cfg.DatabaseURL, cfg.MigrationsPath, steps)
			if err != nil {
				return err
			}
			slog.Info("Migrate down finished", slog.Bool("applied", applied), slog.Int("steps", steps))
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to revert")

	cmd.AddCommand(up, down)
	return cmd
}

func postgresConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.StoreDriver != config.StoreDriverPostgres {
		return nil, fmt.Errorf("migrations need STORE_DRIVER=%s, got %q", config.StoreDriverPostgres, cfg.StoreDriver)
	}
	return cfg, nil
}
