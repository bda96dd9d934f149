package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tatuanfpt/ghusers/internal/output"
	"github.com/tatuanfpt/ghusers/internal/service"
)

// NewCmdUser creates the user command.
func NewCmdUser(opts *Options) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user <login>",
		Short: "Show a user's details",
		Long:  "Print profile details for one user, served from the local store when cached.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUser(cmd, opts, args[0])
		},
	}
	userCmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and refetch")
	userCmd.Flags().StringVarP(&opts.Format, "output", "o", "", "output format: table, json")
	return userCmd
}

func runUser(cmd *cobra.Command, opts *Options, login string) error {
	ctx := cmd.Context()

	rt, cleanup, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := service.NewUserDetailService(rt.client, rt.db)
	if opts.Refresh {
		svc.RefreshUserDetail(ctx, login)
	} else {
		svc.FetchUserDetail(ctx, login)
	}

	detail, ok := svc.Detail()
	if !ok {
		if err := lastError(svc.Events()); err != nil {
			return err
		}
		return nil
	}

	formatter, err := output.NewFormatter(rt.cfg.Format)
	if err != nil {
		return err
	}
	return formatter.FormatDetail(cmd.OutOrStdout(), detail)
}
