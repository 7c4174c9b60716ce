package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsefeed-labs/pulse-cli/internal/adapters/driving/httpapi"
	"github.com/pulsefeed-labs/pulse-cli/internal/logger"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the activity feed over HTTP",
	Long: `Starts an HTTP server exposing GET /api/activity. Requests may
carry their own bearer token; otherwise the configured token is used.

The configuration file is watched while serving, so token or default
changes take effect without a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to the configured one)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	addr := serveAddr
	if addr == "" && configStore != nil {
		addr = configStore.Config().ListenAddr
	}
	if addr == "" {
		addr = "127.0.0.1:8787"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The token func reads through the store, so config reloads are
	// picked up on the next request.
	var tokenFn httpapi.TokenFunc
	if configStore != nil {
		tokenFn = func() string { return configStore.Config().Token }

		updates, err := configStore.Watch(ctx)
		if err != nil {
			return fmt.Errorf("failed to watch config: %w", err)
		}
		go func() {
			for range updates {
			}
		}()
	}

	srv := httpapi.NewHandler(feedService, tokenFn).Server(addr)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving activity feed on http://%s", addr)
		cmd.Printf("Serving activity feed on http://%s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		cmd.Println("Shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}
