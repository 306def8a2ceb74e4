package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Source   SourceConfig   `yaml:"source" json:"source"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
}

// SourceConfig configures where analysis records are read from
type SourceConfig struct {
	HistoryFile string `yaml:"history_file" json:"history_file"` // history JSON file
	Database    string `yaml:"database" json:"database"`         // SQLite history store
	Owner       string `yaml:"owner" json:"owner"`               // only list this owner's records
	PageSize    int    `yaml:"page_size" json:"page_size"`       // records per listing page
	Retention   int    `yaml:"retention" json:"retention"`       // analyses kept in the store, 0 keeps all
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat   string `yaml:"default_format" json:"default_format"`     // text|json|markdown|csv|prompt
	ColorMode       string `yaml:"color_mode" json:"color_mode"`             // auto|always|never
	Verbose         bool   `yaml:"verbose" json:"verbose"`                   // default verbosity
	TimestampFormat string `yaml:"timestamp_format" json:"timestamp_format"` // time format string
	CompactMode     bool   `yaml:"compact_mode" json:"compact_mode"`         // compact output mode
	Emoji           bool   `yaml:"emoji" json:"emoji"`                       // emoji in terminal output
	Top             int    `yaml:"top" json:"top"`                           // ranked brands shown, 0 shows all
}

// AnalysisConfig configures aggregation behavior
type AnalysisConfig struct {
	TimelineMode      string        `yaml:"timeline_mode" json:"timeline_mode"`           // overlap|nearest
	ConfidenceSources string        `yaml:"confidence_sources" json:"confidence_sources"` // both|average|detections
	BucketSeconds     float64       `yaml:"bucket_seconds" json:"bucket_seconds"`
	DefaultConfidence float64       `yaml:"default_confidence" json:"default_confidence"` // timeline score when none is recorded
	RankBy            string        `yaml:"rank_by" json:"rank_by"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Source: SourceConfig{
			HistoryFile: "analysis_history.json",
			Database:    "~/.local/share/brandsum/brandsum.sqlite3",
			Owner:       "",
			PageSize:    50,
			Retention:   100,
		},
		Output: OutputConfig{
			DefaultFormat:   "text",
			ColorMode:       "auto",
			Verbose:         false,
			TimestampFormat: "2006-01-02 15:04:05",
			CompactMode:     false,
			Emoji:           true,
			Top:             10,
		},
		Analysis: AnalysisConfig{
			TimelineMode:      "overlap",
			ConfidenceSources: "both",
			BucketSeconds:     5,
			DefaultConfidence: 0.8,
			RankBy:            "appearances",
			Timeout:           30 * time.Second,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateSourceConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateAnalysisConfig(); err != nil {
		return err
	}
	return nil
}

// validateSourceConfig validates record source configuration
func (c *Config) validateSourceConfig() error {
	if c.Source.PageSize < 1 {
		return fmt.Errorf("page_size must be greater than 0")
	}
	if c.Source.Retention < 0 {
		return fmt.Errorf("retention must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
			"prompt":   true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv, prompt)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Top < 0 {
		return fmt.Errorf("top must be non-negative")
	}
	return nil
}

// validateAnalysisConfig validates analysis-related configuration
func (c *Config) validateAnalysisConfig() error {
	validModes := map[string]bool{"overlap": true, "nearest": true}
	if !validModes[c.Analysis.TimelineMode] {
		return fmt.Errorf("invalid timeline mode: %s (must be one of: overlap, nearest)", c.Analysis.TimelineMode)
	}

	validSources := map[string]bool{"both": true, "average": true, "detections": true}
	if !validSources[c.Analysis.ConfidenceSources] {
		return fmt.Errorf("invalid confidence sources: %s (must be one of: both, average, detections)", c.Analysis.ConfidenceSources)
	}

	validRankKeys := map[string]bool{"appearances": true, "exposure": true, "confidence": true, "videos": true}
	if !validRankKeys[c.Analysis.RankBy] {
		return fmt.Errorf("invalid rank_by: %s (must be one of: appearances, exposure, confidence, videos)", c.Analysis.RankBy)
	}

	if c.Analysis.BucketSeconds <= 0 {
		return fmt.Errorf("bucket_seconds must be greater than 0")
	}
	if c.Analysis.DefaultConfidence < 0 || c.Analysis.DefaultConfidence > 1 {
		return fmt.Errorf("default_confidence must be between 0 and 1")
	}
	if c.Analysis.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}
