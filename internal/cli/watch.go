package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	watchTop int
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-run the report whenever a history file changes",
		Long: `Watch a history file and print a fresh report every time it is written.

Uses file system notifications, so new analyses appended by the detection
service show up immediately. Press Ctrl+C to stop watching.

Examples:
  brandsum watch analysis_history.json
  brandsum watch --top 3 -o markdown analysis_history.json`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().IntVar(&watchTop, "top", -1, "ranked brands to show, 0 shows all (default from config)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	// Setup file watcher
	watcher, cleanup, err := setupFileWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	render := func() error {
		return renderWatchReport(out, filename)
	}

	// Initial report before any change arrives
	if err := render(); err != nil {
		GetLogger("watch").Warn("initial report failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runWatchLoop(ctx, watcher, render)
}

// renderWatchReport rebuilds the report from the file's current contents
func renderWatchReport(out io.Writer, filename string) error {
	ctx, cancel := analysisContext()
	defer cancel()

	report, err := buildReport(ctx, filename, "", watchTop)
	if err != nil {
		return err
	}

	f, err := getFormatter()
	if err != nil {
		return err
	}
	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Fprintf(out, "\n%s [%s] %s: %d record(s)\n\n", GetEmoji("watch"), time.Now().Format("15:04:05"), filename, report.RecordCount)
	_, err = out.Write(output)
	return err
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil {
		GetLogger("watch").Warn("failed to close watcher: %v", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// setupFileWatcher validates the path and creates the watcher
func setupFileWatcher(filename string) (*fsnotify.Watcher, func(), error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("file does not exist: %s", filename)
	}

	// Validate file path for security
	if err := validateWatchFilePath(filename); err != nil {
		return nil, nil, fmt.Errorf("invalid file path: %w", err)
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return nil, nil, err
	}

	log := GetLogger("watch")
	log.Info("watching file: %s", filename)
	log.Info("press Ctrl+C to stop")

	return watcher, func() { cleanupWatcher(watcher) }, nil
}

// runWatchLoop re-renders on every write until ctx is cancelled
func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, render func() error) error {
	log := GetLogger("watch")

	for {
		select {
		case <-ctx.Done():
			log.Info("received interrupt signal, stopping")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if err := handleWatchEvent(event, render); err != nil {
				log.Warn("error handling event: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Warn("watcher error: %v", err)
		}
	}
}

// handleWatchEvent processes file system events
func handleWatchEvent(event fsnotify.Event, render func() error) error {
	// Only process write events
	if !event.Has(fsnotify.Write) {
		return nil
	}
	if err := render(); err != nil {
		return fmt.Errorf("error rebuilding report: %w", err)
	}
	return nil
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	// Clean the path to resolve . and .. elements
	cleanPath := filepath.Clean(path)

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}
	if !strings.EqualFold(filepath.Ext(cleanPath), ".json") {
		return fmt.Errorf("history file must have .json extension")
	}

	return nil
}
