// Package cli holds the cobra commands of the catalog server binary.
package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/weekly-exercises/catalog-api/internal/pkg/config"
	"github.com/weekly-exercises/catalog-api/pkg/logger"
)

func NewRootCmd(version string) *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "catalog-api",
		Short:         "Movies, events and users REST API",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")

	root.AddCommand(newServeCmd())
	root.AddCommand(newSeedCmd())
	return root
}

// loadEnvFile loads path into the process environment. A missing file is not
// an error; variables already set win over the file.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// setup loads configuration and initialises the process logger.
func setup(ctx context.Context, version string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "catalog-api",
		Version: version,
	})
	return cfg, log, nil
}
