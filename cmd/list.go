package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatuanfpt/ghusers/internal/log"
	"github.com/tatuanfpt/ghusers/internal/output"
	"github.com/tatuanfpt/ghusers/internal/service"
)

// NewCmdList creates the list command.
func NewCmdList(opts *Options) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "Fetch pages of users, merge them into the local store, and print the result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}
	addListFlags(listCmd, opts)
	return listCmd
}

// addListFlags registers the flags shared by the root command and
// the list command.
func addListFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().IntVar(&opts.Pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "filter logins by substring")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "output format: table, json")
	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "use the local store only, no network")
}

func runList(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	rt, cleanup, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := service.NewUserListService(ctx, rt.client, rt.db,
		service.WithPageSize(rt.cfg.PageSize))

	if !opts.Offline {
		for i := 0; i < opts.Pages; i++ {
			svc.FetchUsers(ctx)
		}
	}
	if opts.Search != "" {
		svc.SetSearchText(opts.Search)
	}

	if err := lastError(svc.Events()); err != nil {
		if svc.Count() == 0 {
			return err
		}
		// Cached rows still printed below.
		log.Warn("fetch failed, showing cached users", "error", err)
	}

	if svc.Count() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
		return nil
	}

	formatter, err := output.NewFormatter(rt.cfg.Format)
	if err != nil {
		return err
	}
	return formatter.FormatUsers(cmd.OutOrStdout(), svc.VisibleUsers())
}
