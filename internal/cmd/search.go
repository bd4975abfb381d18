package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zfogg/blogfront/pkg/formatter"
	"github.com/zfogg/blogfront/pkg/output"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search posts",
	Long:  "Search posts by text. Queries are remembered in the recent search history.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args, " ")
		results, err := application.Search.Submit(ctx, query).Await(ctx)
		if err != nil {
			return err
		}

		s := application.Store.State()
		views := make([]store.PostView, 0, len(results))
		for _, p := range results {
			views = append(views, store.ViewOf(s, p))
		}
		return formatter.PrintPosts(fmt.Sprintf("Results for %q", strings.TrimSpace(query)), views)
	},
}

var searchHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history := application.Store.State().Search.History
		rows := make([][]string, 0, len(history))
		for _, q := range history {
			rows = append(rows, []string{q})
		}
		return output.PrintList("Recent searches", history, []string{"QUERY"}, rows)
	},
}

var searchForgetCmd = &cobra.Command{
	Use:   "forget <query...>",
	Short: "Remove a query from the recent searches",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		application.Store.Dispatch(search.RemoveQuery{Query: query})
		output.PrintSuccess("Forgot %q", query)
		return nil
	},
}

var searchClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the recent searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application.Store.Dispatch(search.ClearHistory{})
		output.PrintSuccess("Search history cleared")
		return nil
	},
}

func init() {
	searchCmd.AddCommand(searchHistoryCmd)
	searchCmd.AddCommand(searchForgetCmd)
	searchCmd.AddCommand(searchClearCmd)
}
