package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

func TestFetchCmd_Use(t *testing.T) {
	assert.Equal(t, "fetch [username]", fetchCmd.Use)
}

func TestFetchCmd_HasPerPageFlag(t *testing.T) {
	flag := fetchCmd.Flags().Lookup("per-page")
	require.NotNil(t, flag, "per-page flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "30", flag.DefValue)
}

func TestFetchCmd_ExecutesWithUsername(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"fetch", "octocat"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "pushed 1 commit to main in octo/repo")
	assert.Contains(t, buf.String(), "fix flaky test")
	assert.Contains(t, buf.String(), "Rate: 42/60 requests remaining")
}

func TestFetchCmd_MissingUsername(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"fetch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username")
}

func TestFetchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"fetch", "--json", "octocat"})
	defer func() {
		rootCmd.SetArgs(nil)
		fetchJSON = false // Reset flag
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"actionText\"")
	assert.Contains(t, buf.String(), "\"category\"")
	assert.Contains(t, buf.String(), "\"rate\"")
}

func TestFetchCmd_FlagsReachOptions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	svc := feedService.(*mockFeedService)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"fetch", "--received", "-n", "50", "--token", "sekret", "octocat"})
	defer func() {
		rootCmd.SetArgs(nil)
		fetchReceived = false
		fetchPerPage = 30
		fetchToken = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "octocat", svc.lastOpts.Username)
	assert.True(t, svc.lastOpts.IncludeReceived)
	assert.Equal(t, 50, svc.lastOpts.PerPage)
	assert.Equal(t, "sekret", svc.lastOpts.Token)
}

func TestFetchCmd_EmptyFeed(t *testing.T) {
	oldService := feedService
	feedService = &mockFeedService{feed: &domain.Feed{}}
	defer func() {
		feedService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"fetch", "octocat"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No recent activity")
}

func TestFetchCmd_ServiceNotConfigured(t *testing.T) {
	oldService := feedService
	feedService = nil
	defer func() {
		feedService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"fetch", "octocat"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "feed service not configured")
}
