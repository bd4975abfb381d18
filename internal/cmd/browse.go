package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/blogfront/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse posts interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		// The browser shows toasts itself and expires them on its own ticks.
		toasts.stop()
		application.Watcher.Stop()
		_, _ = application.Auth.EnsureSession(ctx).Await(ctx)

		return tui.Run(ctx, tui.Deps{
			Store:    application.Store,
			Posts:    application.Posts,
			Search:   application.Search,
			Sessions: application.Auth,
		})
	},
}
