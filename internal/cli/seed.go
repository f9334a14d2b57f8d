package cli

import (
	"catalog-engine/internal/repository"
	"catalog-engine/utils"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Dataset string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into the catalog database",
		Long: `Upsert the dataset items and the facility with its working hours.

Running it again updates the same rows.

Example:
  catalog seed
  catalog seed --dataset ./fixtures/catalog.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadSeedDataset(opts.Dataset)
			if err != nil {
				return err
			}
			return withDatabase(cmd.Context(), opts.RootOptions, func(ctx context.Context, db *repository.PersistedBackend) error {
				res, err := db.Seed(ctx, ds)
				if err != nil {
					return err
				}
				utils.Info("catalog seeded", map[string]any{
					"items_inserted": res.ItemsInserted,
					"items_updated":  res.ItemsUpdated,
					"working_hours":  res.WorkingHours,
				})
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d new and %d existing items\n", res.ItemsInserted, res.ItemsUpdated)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Dataset, "dataset", "", "YAML dataset to load instead of the embedded one")

	return cmd
}

func loadSeedDataset(path string) (repository.Dataset, error) {
	if path == "" {
		return repository.DefaultDataset()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return repository.Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	return repository.ParseDataset(data)
}
