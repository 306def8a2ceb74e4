package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "BRANDSUM_"

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.brandsum.yaml",               // Project-specific config (highest priority)
	"~/.config/brandsum/config.yaml", // User config
	"/etc/brandsum/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	warn        func(format string, args ...any)
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		warn: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// WithWarningHandler routes warnings about unreadable config files
func (l *Loader) WithWarningHandler(warn func(format string, args ...any)) *Loader {
	l.warn = warn
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.brandsum.yaml
// 4. ~/.config/brandsum/config.yaml
// 5. /etc/brandsum/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first, so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := ExpandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.warn("failed to load config from %s: %v", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile overlays a YAML file on config. Keys absent from the file keep
// their current values, including booleans.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - custom paths are validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	merged := *config
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	*config = merged
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Source Config
		"BRANDSUM_SOURCE_HISTORY_FILE": func(v string) error { config.Source.HistoryFile = v; return nil },
		"BRANDSUM_SOURCE_DATABASE":     func(v string) error { config.Source.Database = v; return nil },
		"BRANDSUM_SOURCE_OWNER":        func(v string) error { config.Source.Owner = v; return nil },
		"BRANDSUM_SOURCE_PAGE_SIZE":    func(v string) error { return parseInt(v, &config.Source.PageSize) },
		"BRANDSUM_SOURCE_RETENTION":    func(v string) error { return parseInt(v, &config.Source.Retention) },

		// Output Config
		"BRANDSUM_OUTPUT_DEFAULT_FORMAT":   func(v string) error { config.Output.DefaultFormat = v; return nil },
		"BRANDSUM_OUTPUT_COLOR_MODE":       func(v string) error { config.Output.ColorMode = v; return nil },
		"BRANDSUM_OUTPUT_VERBOSE":          func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"BRANDSUM_OUTPUT_TIMESTAMP_FORMAT": func(v string) error { config.Output.TimestampFormat = v; return nil },
		"BRANDSUM_OUTPUT_COMPACT_MODE":     func(v string) error { return parseBool(v, &config.Output.CompactMode) },
		"BRANDSUM_OUTPUT_EMOJI":            func(v string) error { return parseBool(v, &config.Output.Emoji) },
		"BRANDSUM_OUTPUT_TOP":              func(v string) error { return parseInt(v, &config.Output.Top) },

		// Analysis Config
		"BRANDSUM_ANALYSIS_TIMELINE_MODE":      func(v string) error { config.Analysis.TimelineMode = v; return nil },
		"BRANDSUM_ANALYSIS_CONFIDENCE_SOURCES": func(v string) error { config.Analysis.ConfidenceSources = v; return nil },
		"BRANDSUM_ANALYSIS_BUCKET_SECONDS":     func(v string) error { return parseFloat(v, &config.Analysis.BucketSeconds) },
		"BRANDSUM_ANALYSIS_DEFAULT_CONFIDENCE": func(v string) error { return parseFloat(v, &config.Analysis.DefaultConfidence) },
		"BRANDSUM_ANALYSIS_RANK_BY":            func(v string) error { config.Analysis.RankBy = v; return nil },
		"BRANDSUM_ANALYSIS_TIMEOUT":            func(v string) error { return parseDuration(v, &config.Analysis.Timeout) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, ExpandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := ExpandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
