// Package cmd wires the ghusers command tree.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tatuanfpt/ghusers/internal/tui"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "ghusers",
		Short: "Browse GitHub users from the terminal",
		Long: `Lists GitHub users with cursor pagination, keeps them in a local
store for offline use, and shows follower/location detail per user.
Running ghusers without a subcommand opens the interactive browser
when stdout is a terminal, and prints one page otherwise.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI() {
				return runBrowse(cmd, opts)
			}
			return runList(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
	pf.StringVar(&opts.DBPath, "db", "", "Local store path (default: user cache dir)")
	pf.StringVar(&opts.Token, "token", "", "GitHub token (default: GHUSERS_TOKEN or GITHUB_TOKEN)")
	pf.IntVar(&opts.PageSize, "page-size", 0, "Users per page (default: configured page_size)")

	// The root also accepts the list flags so `ghusers` and
	// `ghusers list` behave identically in pipes.
	addListFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdBrowse(opts))
	rootCmd.AddCommand(NewCmdList(opts))
	rootCmd.AddCommand(NewCmdUser(opts))
	rootCmd.AddCommand(NewCmdFetch(opts))
	rootCmd.AddCommand(NewCmdCache(opts))
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
