package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/pudiya/internal/adapter/postgres"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			if !cfg.Database.Configured() {
				return errNoDatabase
			}

			pool, err := postgres.NewPool(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			return postgres.Migrate(cmd.Context(), pool, logger)
		},
	}
}
