package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/renovation_backoffice/internal/platform/config"
	"github.com/SscSPs/renovation_backoffice/internal/repositories/database/pgsql"
	"github.com/SscSPs/renovation_backoffice/internal/repositories/memory"
	"github.com/SscSPs/renovation_backoffice/pkg/database"
	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "backoffice",
		Short: "Renovation back office: invoices, templates, task boards and expense sheets",
		Long: `backoffice serves the renovation back-office API and runs its maintenance jobs.

Configuration is read from the environment (and a .env file when present).

  backoffice serve          # run the HTTP API
  backoffice migrate up     # apply database migrations
  backoffice seed           # load the default template catalog`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			// Initialize structured logger
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}

// openRepositories builds the store selected by STORE_DRIVER. The returned
// close function is always safe to call.
func openRepositories(ctx context.Context, cfg *config.Config) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		slog.Warn("Using the in-memory store; data is lost on exit")
		return memory.NewStore().Provider(), func() {}, nil
	case config.StoreDriverPostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, func() {}, err
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
	default:
		return portsrepo.RepositoryProvider{}, func() {}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
