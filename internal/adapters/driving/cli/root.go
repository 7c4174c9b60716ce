// Package cli implements the pulse command line interface.
// Services are injected by the composition root before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	configfile "github.com/pulsefeed-labs/pulse-cli/internal/adapters/driven/config/file"
	"github.com/pulsefeed-labs/pulse-cli/internal/adapters/driving/tui"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driving"
	"github.com/pulsefeed-labs/pulse-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Commands check for nil and fail with a clear
// message when the composition root did not wire them.
var (
	feedService     driving.FeedService
	captureRecorder driving.CaptureRecorder
	inputBus        *tui.Bus
	configStore     *configfile.Store
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "GitHub activity and local interaction feed",
	Long: `Pulse aggregates a GitHub user's public activity with a locally
captured interaction log into one reverse-chronological feed.

Fetch activity once with 'pulse fetch', serve it over HTTP with
'pulse serve', or browse it interactively with 'pulse tui'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetFeedService injects the feed service.
func SetFeedService(s driving.FeedService) {
	feedService = s
}

// SetCaptureRecorder injects the capture recorder.
func SetCaptureRecorder(r driving.CaptureRecorder) {
	captureRecorder = r
}

// SetInputBus injects the input bus shared with the TUI.
func SetInputBus(b *tui.Bus) {
	inputBus = b
}

// SetConfigStore injects the configuration store.
func SetConfigStore(s *configfile.Store) {
	configStore = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
