package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCmdCache creates the cache command and its subcommands.
func NewCmdCache(opts *Options) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local store",
	}
	cacheCmd.AddCommand(newCmdCacheClear(opts))
	cacheCmd.AddCommand(newCmdCacheStats(opts))
	return cacheCmd
}

func newCmdCacheClear(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached users and details",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, cleanup, err := setup(ctx, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := rt.db.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Local store cleared.")
			return nil
		},
	}
}

func newCmdCacheStats(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show local store contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, cleanup, err := setup(ctx, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			users, details, err := rt.db.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Users:   %d\n", users)
			fmt.Fprintf(cmd.OutOrStdout(), "Details: %d\n", details)
			return nil
		},
	}
}
