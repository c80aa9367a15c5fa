package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanupTokensCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-tokens",
		Short: "Delete expired and revoked refresh tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Auth.CleanupExpiredTokens(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired/revoked refresh tokens.\n", n)
			return nil
		},
	}
}
