package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/pudiya/internal/app"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the dashboard, the JSON API and the live update stream.

Without a database DSN the dashboard starts in placeholder mode: pages render
but sign-in and entry forms are disabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts.configPath)
		},
	}
}
