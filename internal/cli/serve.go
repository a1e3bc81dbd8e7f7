package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weekly-exercises/catalog-api/internal/app"
	"github.com/weekly-exercises/catalog-api/internal/pkg/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, log, err := setup(ctx, cmd.Root().Version)
			if err != nil {
				return err
			}

			application, err := app.New(ctx, cfg, log, app.Options{})
			if err != nil {
				return err
			}
			defer func() {
				if err := application.Close(cmd.Context()); err != nil {
					log.Error().Err(err).Msg("close backends")
				}
			}()

			if cfg.SeedEnabled() {
				if cfg.Storage != config.StorageMemory {
					log.Warn().Str("storage", cfg.Storage).Msg("seeding demo accounts with well-known passwords into a persistent store")
				}
				if _, err := application.Seed(ctx, false); err != nil {
					return err
				}
			}
			return application.Run(ctx)
		},
	}
}
