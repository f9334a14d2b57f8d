package cli

import (
	"catalog-engine/internal/repository"
	"catalog-engine/utils"
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewPromoteCommand creates the promote command.
func NewPromoteCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "promote <subject>",
		Short: "Grant the ADMIN role to a viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := args[0]
			return withDatabase(cmd.Context(), rootOpts, func(ctx context.Context, db *repository.PersistedBackend) error {
				v, err := db.PromoteViewer(ctx, subject, displayName(name, subject))
				if err != nil {
					return err
				}
				utils.Info("viewer promoted", map[string]any{"viewer_id": v.ViewerID, "subject": v.Subject})
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", v.Subject, v.ViewerID, v.Role)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name used when the viewer does not exist yet")

	return cmd
}

func displayName(name, subject string) string {
	if name == "" {
		return subject
	}
	return name
}
