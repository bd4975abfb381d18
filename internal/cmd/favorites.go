package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/blogfront/pkg/api"
	"github.com/zfogg/blogfront/pkg/formatter"
	"github.com/zfogg/blogfront/pkg/logger"
	"github.com/zfogg/blogfront/pkg/output"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/favorites"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Favorite posts",
	Long:    "Keep a local list of favorite posts",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ids := application.Store.State().Favorites.IDs

		views := make([]store.PostView, 0, len(ids))
		for _, id := range ids {
			post, err := application.Posts.FetchByID(ctx, id).Await(ctx)
			if err != nil {
				logger.Warn("Favorite post unavailable", "post_id", id, "error", err)
				if api.IsNotFound(err) {
					output.PrintWarning("Post %d no longer exists", id)
				} else {
					output.PrintWarning("Post %d is unavailable: %v", id, err)
				}
				continue
			}
			views = append(views, store.ViewOf(application.Store.State(), post))
		}
		return formatter.PrintPosts("Favorites", views)
	},
}

// favoriteCommand builds a subcommand that dispatches one action for a post id.
func favoriteCommand(use, short, done string, action func(id int) store.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <post-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			application.Store.Dispatch(action(id))
			msg := done
			if msg == "" {
				if store.IsFavorite(application.Store.State(), id) {
					msg = "Added post %d to favorites"
				} else {
					msg = "Removed post %d from favorites"
				}
			}
			output.PrintSuccess(msg, id)
			return nil
		},
	}
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application.Store.Dispatch(favorites.Clear{})
		output.PrintSuccess("Favorites cleared")
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoriteCommand("add", "Add a post to favorites", "Added post %d to favorites",
		func(id int) store.Action { return favorites.Add{ID: id} }))
	favoritesCmd.AddCommand(favoriteCommand("remove", "Remove a post from favorites", "Removed post %d from favorites",
		func(id int) store.Action { return favorites.Remove{ID: id} }))
	favoritesCmd.AddCommand(favoriteCommand("toggle", "Add or remove a post", "",
		func(id int) store.Action { return favorites.Toggle{ID: id} }))
	favoritesCmd.AddCommand(favoritesClearCmd)
}
