package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weekly-exercises/catalog-api/internal/app"
	"github.com/weekly-exercises/catalog-api/internal/pkg/config"
)

func newSeedCmd() *cobra.Command {
	var keep bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, movies and events into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := setup(ctx, cmd.Root().Version)
			if err != nil {
				return err
			}
			if cfg.Storage == config.StorageMemory {
				log.Warn().Msg("STORAGE=memory: seeded data is discarded when this command exits")
			}

			application, err := app.New(ctx, cfg, log, app.Options{})
			if err != nil {
				return err
			}
			defer application.Close(ctx)

			res, err := application.Seed(ctx, !keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d movies, %d events\n", res.Users, res.Movies, res.Events)
			fmt.Fprintln(cmd.OutOrStdout(), `admin: username="admin" password="admin123"`)
			fmt.Fprintln(cmd.OutOrStdout(), `user:  username="john"  password="user123"`)
			return nil
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "Keep existing data instead of dropping it first")
	return cmd
}
