package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatuanfpt/ghusers/internal/log"
	"github.com/tatuanfpt/ghusers/internal/service"
)

// NewCmdFetch creates the fetch command.
func NewCmdFetch(opts *Options) *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Prefetch users into the local store",
		Long:  "Fetch pages of users, and optionally their details, so later runs work offline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
	}
	fetchCmd.Flags().IntVar(&opts.Pages, "pages", 1, "number of pages to fetch")
	fetchCmd.Flags().BoolVar(&opts.Details, "details", false, "also fetch details for the listed users")
	fetchCmd.Flags().IntVar(&opts.Workers, "workers", 4, "concurrent detail fetches")
	return fetchCmd
}

func runFetch(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	rt, cleanup, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := service.NewUserListService(ctx, rt.client, rt.db,
		service.WithPageSize(rt.cfg.PageSize))

	before := svc.Count()
	for i := 0; i < opts.Pages; i++ {
		svc.FetchUsers(ctx)
	}
	if err := lastError(svc.Events()); err != nil && svc.Count() == before {
		return err
	}

	users := svc.VisibleUsers()
	fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d new users (%d total).\n",
		svc.Count()-before, svc.Count())

	if !opts.Details {
		return nil
	}

	logins := make([]string, 0, len(users))
	for _, u := range users {
		logins = append(logins, u.Login)
	}
	fetched, err := service.WarmDetails(ctx, rt.client, rt.db, logins, opts.Workers)
	if err != nil {
		return fmt.Errorf("fetching details: %w", err)
	}
	log.Debug("detail warmup complete", "fetched", fetched, "requested", len(logins))
	fmt.Fprintf(cmd.OutOrStdout(), "Fetched details for %d users.\n", fetched)
	return nil
}
