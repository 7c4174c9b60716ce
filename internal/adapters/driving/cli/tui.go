package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/pulsefeed-labs/pulse-cli/internal/adapters/driving/tui"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

var (
	tuiReceived bool
	tuiPerPage  int
)

var tuiCmd = &cobra.Command{
	Use:   "tui [username]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive feed browser. Three tabs show the unified
feed, the remote GitHub feed and the local capture log.

Controls:
  tab/shift+tab - Switch tabs
  ↑/k, ↓/j      - Move selection
  r             - Refresh the remote feed
  c             - Toggle capture
  e             - Export the capture log
  q             - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiReceived, "received", false, "also fetch events received by the user")
	tuiCmd.Flags().IntVarP(&tuiPerPage, "per-page", "n", domain.DefaultPerPage, "upstream page size (1-100)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if feedService == nil {
		return errors.New("feed service not configured")
	}
	if captureRecorder == nil {
		return errors.New("capture recorder not configured")
	}

	opts := tui.Options{
		IncludeReceived: tuiReceived,
		PerPage:         tuiPerPage,
	}
	if len(args) > 0 {
		opts.Username = args[0]
	}
	if configStore != nil {
		cfg := configStore.Config()
		if opts.Username == "" {
			opts.Username = cfg.Username
		}
		opts.Token = cfg.Token
		if !opts.IncludeReceived {
			opts.IncludeReceived = cfg.IncludeReceived
		}
	}
	if opts.Username == "" {
		return errors.New("no username given and none configured; run 'pulse tui <username>'")
	}

	app, err := tui.NewApp(feedService, captureRecorder, inputBus, opts)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
