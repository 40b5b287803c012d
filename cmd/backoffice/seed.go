package main

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/core/services"
	"github.com/SscSPs/renovation_backoffice/internal/platform/config"
	"github.com/SscSPs/renovation_backoffice/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the default template catalog; existing names are skipped",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if file != "" {
				cfg.TemplateSeedFile = file
			}

			repos, closeRepos, err := openRepositories(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeRepos()

			container := services.NewServiceContainer(cfg, repos, nil)
			return seedTemplates(cmd.Context(), cfg, container.Template)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Catalog file (defaults to TEMPLATE_SEED_FILE)")
	return cmd
}

func seedTemplates(ctx context.Context, cfg *config.Config, templates portssvc.TemplateSvcFacade) error {
	catalog, err := seed.LoadTemplateCatalog(cfg.TemplateSeedFile)
	if err != nil {
		return err
	}
	res, err := seed.Apply(ctx, templates, catalog)
	if err != nil {
		return err
	}
	slog.Info("Template catalog seeded",
		slog.String("file", cfg.TemplateSeedFile),
		slog.Int("created", res.Created),
		slog.Int("skipped", res.Skipped))
	return nil
}
