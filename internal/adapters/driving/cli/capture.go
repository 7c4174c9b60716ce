package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var captureLogLimit int

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Manage the local interaction capture log",
	Long: `Inspect, export, import and clear the locally captured
interaction log. Capture itself is toggled inside 'pulse tui'; these
commands operate on the persisted log.

Examples:
  # Print the newest captured interactions
  pulse capture log

  # Export the log to a file
  pulse capture export interactions.json

  # Replace the log with a previously exported file
  pulse capture import interactions.json

  # Drop the log entirely
  pulse capture clear`,
}

var captureLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Print the capture log, newest first",
	RunE:  runCaptureLog,
}

var captureExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the capture log as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCaptureExport,
}

var captureImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the capture log with an exported file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCaptureImport,
}

var captureClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the capture log",
	RunE:  runCaptureClear,
}

func init() {
	captureLogCmd.Flags().IntVarP(&captureLogLimit, "limit", "n", 20, "maximum entries to print (0 for all)")

	captureCmd.AddCommand(captureLogCmd)
	captureCmd.AddCommand(captureExportCmd)
	captureCmd.AddCommand(captureImportCmd)
	captureCmd.AddCommand(captureClearCmd)
	rootCmd.AddCommand(captureCmd)
}

func runCaptureLog(cmd *cobra.Command, _ []string) error {
	if captureRecorder == nil {
		return errors.New("capture recorder not configured")
	}

	events := captureRecorder.Events()
	if len(events) == 0 {
		cmd.Println("Capture log is empty.")
		return nil
	}

	limit := len(events)
	if captureLogLimit > 0 && captureLogLimit < limit {
		limit = captureLogLimit
	}

	for _, ev := range events[:limit] {
		line := fmt.Sprintf("  %s  %-10s %s",
			ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.Kind, ev.Label)
		cmd.Println(line)
	}
	if limit < len(events) {
		cmd.Printf("  ... and %d more\n", len(events)-limit)
	}

	return nil
}

func runCaptureExport(cmd *cobra.Command, args []string) error {
	if captureRecorder == nil {
		return errors.New("capture recorder not configured")
	}

	data, err := captureRecorder.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if len(args) == 0 {
		cmd.Println(string(data))
		return nil
	}

	if err := os.WriteFile(args[0], data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	cmd.Printf("Exported capture log to %s\n", args[0])
	return nil
}

func runCaptureImport(cmd *cobra.Command, args []string) error {
	if captureRecorder == nil {
		return errors.New("capture recorder not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	if err := captureRecorder.Import(cmd.Context(), data); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported capture log from %s (%d entries)\n", args[0], len(captureRecorder.Events()))
	return nil
}

func runCaptureClear(cmd *cobra.Command, _ []string) error {
	if captureRecorder == nil {
		return errors.New("capture recorder not configured")
	}

	if err := captureRecorder.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	cmd.Println("Capture log cleared.")
	return nil
}
