package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/yildizm/BrandSum/internal/formatter"
)

// outputFile is shared by every command that renders a report
var outputFile string

// formatterOptions maps the global flags and config onto formatter options
func formatterOptions() formatter.Options {
	cfg := GetGlobalConfig()
	return formatter.Options{
		Color:           isColorEnabled() && outputFile == "",
		Emoji:           !isEmojiDisabled(),
		Compact:         cfg.Output.CompactMode,
		Verbose:         isVerbose(),
		TimestampFormat: cfg.Output.TimestampFormat,
	}
}

// getFormatter returns the formatter for the selected output format
func getFormatter() (formatter.Formatter, error) {
	f, err := formatter.New(getOutputFormat(), formatterOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to get formatter: %w", err)
	}
	return f, nil
}

// isJSONOutput reports whether a section command should emit raw JSON
func isJSONOutput() bool {
	return getOutputFormat() == "json"
}

// marshalJSON encodes a section, indented unless compact mode is on
func marshalJSON(v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if GetGlobalConfig().Output.CompactMode {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// handleOutputDestination writes output to file or the command's stdout
func handleOutputDestination(out io.Writer, output []byte) error {
	if outputFile != "" {
		if err := validateOutputFilePath(outputFile); err != nil {
			return fmt.Errorf("invalid output file path: %w", err)
		}

		if err := writeOutputBytesToFile(output, outputFile); err != nil {
			return fmt.Errorf("failed to write output to file: %w", err)
		}

		GetLogger("output").Info("output saved to: %s", outputFile)
		return nil
	}

	_, err := out.Write(output)
	return err
}

func validateOutputFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}
	info, err := os.Stat(filepath.Clean(path))
	if err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory: %s", path)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Create or truncate the file
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			GetLogger("output").Warn("failed to close output file: %v", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Sync to ensure data is written
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
