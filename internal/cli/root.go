package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/BrandSum/internal/config"
	"github.com/yildizm/BrandSum/internal/emoji"
	"github.com/yildizm/BrandSum/internal/logger"
	"github.com/yildizm/BrandSum/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	dbPath    string
	owner     string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	globalConfig = nil

	rootCmd := &cobra.Command{
		Use:   "brandsum",
		Short: "Brand exposure analytics for video detection results",
		Long: `BrandSum aggregates the results of video brand-detection runs into
statistics, per-brand profiles, confidence distributions, timelines and rankings.

Records are read from a history JSON file or from a SQLite history store and
rendered as text, JSON, Markdown, CSV or an LLM-ready prompt.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}

			if err := loadGlobalConfig(cmd); err != nil {
				return err
			}

			emoji.SetEmojiDisabled(isEmojiDisabled())
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv, prompt)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite history store path")
	rootCmd.PersistentFlags().StringVar(&owner, "owner", "", "only use records owned by this user")

	// Add subcommands
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newBrandsCommand())
	rootCmd.AddCommand(newConfidenceCommand())
	rootCmd.AddCommand(newRankCommand())
	rootCmd.AddCommand(newTimelineCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newDashboardCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// loadGlobalConfig loads the config once per invocation; flags set on the
// command line win over file and environment values
func loadGlobalConfig(cmd *cobra.Command) error {
	loader := config.NewLoader().WithWarningHandler(func(format string, args ...any) {
		GetLogger("config").Warn(format, args...)
	})

	cfg, err := loader.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if !cmd.Flags().Changed("verbose") && cfg.Output.Verbose {
		verbose = true
	}
	if !cmd.Flags().Changed("no-emoji") && !cfg.Output.Emoji {
		noEmoji = true
	}
	if outputFmt == "" {
		outputFmt = cfg.Output.DefaultFormat
	}

	globalConfig = cfg
	return nil
}

// GetGlobalConfig returns the loaded configuration, or the defaults before loading
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// GetLogger returns a component logger that follows the --verbose flag
func GetLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "BrandSum %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	if outputFmt == "" {
		return GetGlobalConfig().Output.DefaultFormat
	}
	return outputFmt
}

func isEmojiDisabled() bool {
	return noEmoji
}

// isColorEnabled combines --no-color, NO_COLOR and the configured color mode
func isColorEnabled() bool {
	if noColor {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return !ui.IsColorDisabled()
	}
}
