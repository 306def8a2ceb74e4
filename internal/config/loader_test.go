package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.Analysis.RankBy != "appearances" {
		t.Errorf("Expected default rank key appearances, got %s", cfg.Analysis.RankBy)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	configContent := `version: "1.0"
source:
  history_file: "runs.json"
  owner: "alice"
output:
  default_format: "json"
  verbose: true
analysis:
  timeline_mode: nearest
  bucket_seconds: 2.5
  timeout: 45s
`

	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Source.HistoryFile != "runs.json" {
		t.Errorf("Expected history file runs.json, got %s", cfg.Source.HistoryFile)
	}
	if cfg.Source.Owner != "alice" {
		t.Errorf("Expected owner alice, got %s", cfg.Source.Owner)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}
	if cfg.Analysis.TimelineMode != "nearest" {
		t.Errorf("Expected timeline mode nearest, got %s", cfg.Analysis.TimelineMode)
	}
	if cfg.Analysis.BucketSeconds != 2.5 {
		t.Errorf("Expected bucket seconds 2.5, got %f", cfg.Analysis.BucketSeconds)
	}
	if cfg.Analysis.Timeout != 45*time.Second {
		t.Errorf("Expected timeout 45s, got %v", cfg.Analysis.Timeout)
	}

	// Keys absent from the file keep their defaults
	if !cfg.Output.Emoji {
		t.Error("Expected emoji default to survive a file without the key")
	}
	if cfg.Source.PageSize != 50 {
		t.Errorf("Expected default page size 50, got %d", cfg.Source.PageSize)
	}
}

func TestLoadConfigFileCanDisableBooleans(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "plain.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  emoji: false\n"), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Output.Emoji {
		t.Error("Expected emoji to be disabled by the config file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid-config.yaml")

	invalidConfigContent := `version: "1.0"
output:
  default_format: "json
  verbose: true
`

	if err := os.WriteFile(configPath, []byte(invalidConfigContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	loader := NewLoader()
	if _, err := loader.LoadConfig(configPath); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("analysis:\n  rank_by: popularity\n"), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	_, err := NewLoader().LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("BRANDSUM_SOURCE_OWNER", "bob")
	t.Setenv("BRANDSUM_SOURCE_PAGE_SIZE", "20")
	t.Setenv("BRANDSUM_OUTPUT_VERBOSE", "true")
	t.Setenv("BRANDSUM_OUTPUT_EMOJI", "false")
	t.Setenv("BRANDSUM_ANALYSIS_DEFAULT_CONFIDENCE", "0.65")
	t.Setenv("BRANDSUM_ANALYSIS_TIMEOUT", "5s")

	loader := NewLoader()
	cfg := DefaultConfig()

	if err := loader.applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Source.Owner != "bob" {
		t.Errorf("Expected owner bob, got %s", cfg.Source.Owner)
	}
	if cfg.Source.PageSize != 20 {
		t.Errorf("Expected page size 20, got %d", cfg.Source.PageSize)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}
	if cfg.Output.Emoji {
		t.Errorf("Expected emoji to be false")
	}
	if cfg.Analysis.DefaultConfidence != 0.65 {
		t.Errorf("Expected default confidence 0.65, got %f", cfg.Analysis.DefaultConfidence)
	}
	if cfg.Analysis.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.Analysis.Timeout)
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "BRANDSUM_SOURCE_PAGE_SIZE", "not-a-number"},
		{"invalid bool", "BRANDSUM_OUTPUT_VERBOSE", "not-a-bool"},
		{"invalid float", "BRANDSUM_ANALYSIS_BUCKET_SECONDS", "wide"},
		{"invalid duration", "BRANDSUM_ANALYSIS_TIMEOUT", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			loader := NewLoader()
			cfg := DefaultConfig()

			if err := loader.applyEnvOverrides(cfg); err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	var duration time.Duration
	if err := parseDuration("30s", &duration); err != nil || duration != 30*time.Second {
		t.Errorf("parseDuration: got %v, %v", duration, err)
	}
	if err := parseDuration("invalid", &duration); err == nil {
		t.Error("Expected error for invalid duration")
	}

	var value int
	if err := parseInt("42", &value); err != nil || value != 42 {
		t.Errorf("parseInt: got %d, %v", value, err)
	}
	if err := parseInt("not-a-number", &value); err == nil {
		t.Error("Expected error for invalid int")
	}

	var f float64
	if err := parseFloat("2.5", &f); err != nil || f != 2.5 {
		t.Errorf("parseFloat: got %f, %v", f, err)
	}
	if err := parseFloat("x", &f); err == nil {
		t.Error("Expected error for invalid float")
	}

	var b bool
	if err := parseBool("true", &b); err != nil || !b {
		t.Errorf("parseBool: got %v, %v", b, err)
	}
	if err := parseBool("not-a-bool", &b); err == nil {
		t.Error("Expected error for invalid bool")
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if path, found := FindConfigFile(); found && path == ConfigPaths[0] {
		t.Errorf("Unexpected project config %s", path)
	}

	tempConfigPath := "./.brandsum.yaml"
	if err := os.WriteFile(tempConfigPath, []byte("version: \"1.0\""), 0o600); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	configPath, found := FindConfigFile()
	if !found {
		t.Error("Expected config file to be found, but none was found")
	}
	if configPath != tempConfigPath {
		t.Errorf("Expected config path %s, got %s", tempConfigPath, configPath)
	}
}

func TestFileExists(t *testing.T) {
	if fileExists("/path/that/does/not/exist") {
		t.Error("Expected file to not exist, but fileExists returned true")
	}

	tempFile := filepath.Join(t.TempDir(), "test-file")
	if err := os.WriteFile(tempFile, []byte("test"), 0o600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if !fileExists(tempFile) {
		t.Error("Expected file to exist, but fileExists returned false")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/data/brandsum.sqlite3"); got != filepath.Join(home, "data/brandsum.sqlite3") {
		t.Errorf("Unexpected expansion: %s", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("Absolute path should be unchanged, got %s", got)
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid yaml file",
			path:    "config.yaml",
			wantErr: false,
		},
		{
			name:    "valid yml file",
			path:    "config.yml",
			wantErr: false,
		},
		{
			name:    "path traversal attempt",
			path:    "../../../etc/passwd",
			wantErr: true,
			errMsg:  "path traversal not allowed",
		},
		{
			name:    "non-yaml file",
			path:    "config.txt",
			wantErr: true,
			errMsg:  "config file must have .yaml or .yml extension",
		},
		{
			name:    "system file access",
			path:    "/etc/passwd.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
		{
			name:    "proc filesystem access",
			path:    "/proc/version.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
		{
			name:    "relative path with valid extension",
			path:    "./configs/app.yaml",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
