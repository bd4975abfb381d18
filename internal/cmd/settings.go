package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zfogg/blogfront/pkg/config"
	"github.com/zfogg/blogfront/pkg/output"
	"github.com/zfogg/blogfront/pkg/store/ui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Client settings",
}

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the colour theme",
	ValidArgs: []string{"light", "dark", "toggle"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if args[0] == "toggle" {
				application.Store.Dispatch(ui.ToggleTheme{})
			} else {
				theme, ok := ui.ParseTheme(args[0])
				if !ok {
					return fmt.Errorf("unknown theme %q", args[0])
				}
				application.Store.Dispatch(ui.SetTheme{Theme: theme})
			}
		}

		theme := application.Store.State().UI.Theme
		if output.GetOutputFormat() == output.FormatJSON {
			return output.Print("", map[string]string{"theme": string(theme)})
		}
		output.PrintInfo("Theme: %s", theme)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the loaded configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := application.Settings
		return output.PrintRecord("Configuration", map[string]interface{}{
			"api.base_url":       s.BaseURL,
			"api.timeout":        s.Timeout.String(),
			"posts.page_size":    s.PageSize,
			"posts.course_group": s.CourseGroup,
			"posts.ordering":     s.Ordering,
			"storage.backend":    s.StorageBackend,
			"storage.path":       s.StoragePath,
			"demo.seed_counts":   s.DemoCounts,
			"output.format":      string(output.GetOutputFormat()),
			"log.level":          s.LogLevel,
			"log.file":           s.LogFile,
			"config_dir":         config.GetConfigDir(),
		})
	},
}

func init() {
	settingsCmd.AddCommand(themeCmd)
	settingsCmd.AddCommand(showCmd)
}
