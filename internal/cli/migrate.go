package cli

import (
	"catalog-engine/internal/config"
	"catalog-engine/internal/repository"
	"catalog-engine/utils"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing catalog tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), rootOpts, func(ctx context.Context, db *repository.PersistedBackend) error {
				if err := db.ApplySchema(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			})
		},
	}
}

// withDatabase opens the configured database for a maintenance command
func withDatabase(ctx context.Context, rootOpts *RootOptions, fn func(context.Context, *repository.PersistedBackend) error) error {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	return runWithDatabase(ctx, cfg, fn)
}

func runWithDatabase(ctx context.Context, cfg config.Config, fn func(context.Context, *repository.PersistedBackend) error) error {
	if !cfg.DatabaseConfigured() {
		return errNoDatabase
	}

	db, err := openPersisted(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			utils.Warn("error closing database", map[string]any{"error": err.Error()})
		}
	}()

	return fn(ctx, db)
}
