package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/pulsefeed-labs/pulse-cli/internal/adapters/driven/config/file"
)

var authToken string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the GitHub token",
	Long: `Store or remove the GitHub token used for upstream calls.

Unauthenticated requests work but are limited to 60 per hour; a token
raises that to 5000. The token is stored in the pulse config file with
owner-only permissions.

Examples:
  # Prompt for a token without echoing it
  pulse auth login

  # Non-interactive
  pulse auth login --token ghp_xxx

  # Forget the stored token
  pulse auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a GitHub token",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is stored",
	RunE:  runAuthStatus,
}

func init() {
	authLoginCmd.Flags().StringVar(&authToken, "token", "", "token value (prompts when omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	token := strings.TrimSpace(authToken)
	if token == "" {
		cmd.Print("GitHub token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}
	if token == "" {
		return errors.New("no token provided")
	}

	if err := configStore.Update(func(c *configfile.Config) { c.Token = token }); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	cmd.Println("Token saved.")
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if configStore.Config().Token == "" {
		cmd.Println("No token stored.")
		return nil
	}

	if err := configStore.Update(func(c *configfile.Config) { c.Token = "" }); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}

	cmd.Println("Token removed.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if configStore.Config().Token == "" {
		cmd.Println("No token stored. Unauthenticated requests are limited to 60/hour.")
		return nil
	}

	cmd.Println("A token is stored.")
	return nil
}
