// Command pulse aggregates a GitHub user's public activity with a
// locally captured interaction log into one feed.
package main

import (
	"context"
	"fmt"
	"os"

	configfile "github.com/pulsefeed-labs/pulse-cli/internal/adapters/driven/config/file"
	"github.com/pulsefeed-labs/pulse-cli/internal/adapters/driven/storage/sqlite"
	"github.com/pulsefeed-labs/pulse-cli/internal/adapters/driving/cli"
	"github.com/pulsefeed-labs/pulse-cli/internal/adapters/driving/tui"
	"github.com/pulsefeed-labs/pulse-cli/internal/connectors/github"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	configStore, err := configfile.NewStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	captureStore, err := sqlite.NewStore(configStore.Config().DataDir)
	if err != nil {
		return fmt.Errorf("opening capture store: %w", err)
	}
	defer captureStore.Close()

	bus := tui.NewBus()
	recorder, err := services.NewRecorder(ctx, captureStore, bus)
	if err != nil {
		return fmt.Errorf("initialising capture recorder: %w", err)
	}

	feed := services.NewFeedAggregator(github.NewSource())

	cli.SetVersion(version)
	cli.SetFeedService(feed)
	cli.SetCaptureRecorder(recorder)
	cli.SetInputBus(bus)
	cli.SetConfigStore(configStore)

	return cli.Execute()
}
