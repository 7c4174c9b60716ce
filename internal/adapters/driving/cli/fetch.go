package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

var (
	fetchReceived bool
	fetchPerPage  int
	fetchToken    string
	fetchJSON     bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [username]",
	Short: "Fetch a user's public GitHub activity",
	Long: `Fetches recent public activity for a GitHub user and prints it
newest first. The username argument falls back to the configured
default. Pass --received to also include events received by the user.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchReceived, "received", false, "also fetch events received by the user")
	fetchCmd.Flags().IntVarP(&fetchPerPage, "per-page", "n", domain.DefaultPerPage, "upstream page size (1-100)")
	fetchCmd.Flags().StringVar(&fetchToken, "token", "", "bearer token for upstream calls")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "output the feed as JSON")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	opts := fetchOptions(args)
	feed, err := feedService.Fetch(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if fetchJSON {
		return outputFeedJSON(cmd, feed)
	}
	return outputFeedTable(cmd, feed)
}

// fetchOptions resolves flags against the configured defaults.
func fetchOptions(args []string) domain.FetchOptions {
	opts := domain.FetchOptions{
		IncludeReceived: fetchReceived,
		PerPage:         fetchPerPage,
		Token:           fetchToken,
	}

	if len(args) > 0 {
		opts.Username = args[0]
	}

	if configStore != nil {
		cfg := configStore.Config()
		if opts.Username == "" {
			opts.Username = cfg.Username
		}
		if opts.Token == "" {
			opts.Token = cfg.Token
		}
		if !opts.IncludeReceived {
			opts.IncludeReceived = cfg.IncludeReceived
		}
	}

	return opts
}

func outputFeedJSON(cmd *cobra.Command, feed *domain.Feed) error {
	data, err := json.MarshalIndent(feed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal feed: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputFeedTable(cmd *cobra.Command, feed *domain.Feed) error {
	if len(feed.Events) == 0 {
		cmd.Println("No recent activity.")
		return nil
	}

	for i := range feed.Events {
		ev := &feed.Events[i]
		cmd.Printf("  %s  %s\n", ev.CreatedAt.Format("2006-01-02 15:04"), ev.ActionText)
		for _, line := range ev.Details {
			cmd.Printf("      %s\n", line)
		}
	}

	if feed.Rate.Remaining != nil && feed.Rate.Limit != nil {
		cmd.Println()
		cmd.Printf("Rate: %d/%d requests remaining\n", *feed.Rate.Remaining, *feed.Rate.Limit)
	}

	return nil
}
