package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tatuanfpt/ghusers/internal/service"
	"github.com/tatuanfpt/ghusers/internal/tui"
)

// NewCmdBrowse creates the browse command.
func NewCmdBrowse(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse users interactively",
		Long:  "Open an interactive terminal browser over the user list with search and a detail pane.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts)
		},
	}
}

func runBrowse(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	rt, cleanup, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	list := service.NewUserListService(ctx, rt.client, rt.db,
		service.WithPageSize(rt.cfg.PageSize))
	detail := service.NewUserDetailService(rt.client, rt.db)

	return tui.Run(ctx, list, detail)
}
