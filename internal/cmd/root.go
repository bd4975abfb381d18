package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zfogg/blogfront/internal/app"
	"github.com/zfogg/blogfront/pkg/config"
	"github.com/zfogg/blogfront/pkg/errors"
	"github.com/zfogg/blogfront/pkg/formatter"
	"github.com/zfogg/blogfront/pkg/logger"
	"github.com/zfogg/blogfront/pkg/output"
)

var (
	verbose     bool
	configPath  string
	outputFmt   string
	demoCounts  bool
	dumpMetrics bool

	application *app.App
	toasts      *toastPrinter
)

// standalone marks commands that run without building the application.
const standalone = "standalone"

var rootCmd = &cobra.Command{
	Use:   "blogfront",
	Short: "blogfront - terminal client for the course blog",
	Long: `blogfront is a command-line client for the course blog API.
Browse and search posts, publish your own, keep favorites and manage
your account directly from the terminal.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[standalone] != "" {
			return nil
		}

		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		settings := config.Load()
		if demoCounts {
			settings.DemoCounts = true
		}
		if outputFmt != "" {
			if !output.ValidateOutputFormat(outputFmt) {
				return fmt.Errorf("invalid output format %q: use text, json or table", outputFmt)
			}
			settings.OutputFormat = outputFmt
		}

		logger.Init(settings.LogFile, settings.LogLevel, verbose)
		output.SetFormat(settings.OutputFormat)

		a, err := app.New(settings)
		if err != nil {
			return err
		}
		application = a
		toasts = startToastPrinter(a.Store)
		logger.Debug("Application ready", "command", cmd.CommandPath(), "backend", settings.StorageBackend)
		return nil
	},
}

// shownError is a failure the user has already seen as a notification.
type shownError struct{ err error }

func (e shownError) Error() string { return e.err.Error() }
func (e shownError) Unwrap() error { return e.err }

// shown marks err as already reported.
func shown(err error) error {
	if err == nil {
		return nil
	}
	return shownError{err: err}
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if ferr := finish(); err == nil {
		err = ferr
	}
	if err != nil {
		var s shownError
		if !stderrors.As(err, &s) {
			fmt.Fprint(os.Stderr, errors.FormatError(err))
		}
		os.Exit(1)
	}
}

// finish drains the notification queue, printing anything not yet shown,
// writes the metrics dump and releases the application.
func finish() error {
	defer logger.Close()
	if application == nil {
		return nil
	}

	pending := application.TakeNotifications()
	if toasts != nil {
		toasts.stop()
		toasts.print(pending)
		toasts = nil
	} else {
		formatter.PrintToasts(pending)
	}

	var errs []error
	if dumpMetrics {
		errs = append(errs, application.Metrics.WriteText(os.Stderr))
	}
	errs = append(errs, application.Close())
	application = nil
	return stderrors.Join(errs...)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/blogfront/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "", "Output format: text, json, table (default from config)")
	rootCmd.PersistentFlags().BoolVar(&demoCounts, "demo", false, "Seed random like/dislike counts for posts")
	rootCmd.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "Print Prometheus metrics to stderr on exit")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionCmd)
}
