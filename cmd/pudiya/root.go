package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pudiya/internal/app"
	"github.com/heartmarshall/pudiya/internal/config"
)

var errNoDatabase = errors.New("database.dsn (DATABASE_DSN) is required for this command")

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "pudiya",
		Short:         "Pudi incident dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")

	root.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newCleanupTokensCommand(opts),
		newVersionCommand(),
	)
	return root
}

// load reads the configuration and initializes the default logger.
func (o *rootOptions) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

// open builds the application for a one-shot command that needs the
// database.
func (o *rootOptions) open(ctx context.Context) (*app.App, *slog.Logger, error) {
	cfg, logger, err := o.load()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Database.Configured() {
		return nil, nil, errNoDatabase
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}
