package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/BrandSum/internal/formatter"
)

var (
	reportRankBy string
	reportTop    int

	rankTarget string
	rankBy     string
	rankTop    int

	timelineFile string
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Build the full brand exposure report",
		Long: `Aggregate every analysis record into one report: processing statistics,
brand profiles, the confidence distribution and the brand ranking.

Records are read from the given history file, or from the configured source
when no file is given.

Examples:
  brandsum report analysis_history.json
  brandsum report --db ~/brandsum.sqlite3 --owner alice -o markdown
  brandsum report history.json --by exposure --top 5 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReport,
	}

	cmd.Flags().StringVar(&reportRankBy, "by", "", "rank brands by appearances, exposure, confidence or videos")
	cmd.Flags().IntVar(&reportTop, "top", -1, "ranked brands to show, 0 shows all (default from config)")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := analysisContext()
	defer cancel()

	report, err := buildReport(ctx, fileArg(args), reportRankBy, reportTop)
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

	return handleOutputDestination(cmd.OutOrStdout(), output)
}

// buildReport loads a snapshot and runs the engine over it
func buildReport(ctx context.Context, file, rankKey string, top int) (*analyzer.Report, error) {
	engine, err := buildEngine(rankKey, top)
	if err != nil {
		return nil, err
	}

	records, err := loadRecords(ctx, file)
	if err != nil {
		return nil, err
	}

	report, err := engine.Analyze(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return report, nil
}

func fileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// sectionCommand builds a command that prints one part of the report
func sectionCommand(use, short, long string, render func(*analyzer.Report) string, section func(*analyzer.Report) any) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := analysisContext()
			defer cancel()

			report, err := buildReport(ctx, fileArg(args), "", 0)
			if err != nil {
				return err
			}

			var output []byte
			switch getOutputFormat() {
			case "json":
				output, err = marshalJSON(section(report))
				if err != nil {
					return err
				}
			case "", "text", "terminal":
				output = []byte(render(report))
			default:
				return fmt.Errorf("%w %q for %s (must be one of: text, json)", formatter.ErrUnknownFormat, getOutputFormat(), use)
			}

			return handleOutputDestination(cmd.OutOrStdout(), output)
		},
	}
	cmd.Flags().StringVar(&outputFile, "output-file", "", "save output to file instead of stdout")
	return cmd
}

func newStatsCommand() *cobra.Command {
	return sectionCommand("stats",
		"Show processing statistics",
		`Show corpus-wide timing statistics and per-video processing performance.

Malformed records count toward the averages but add nothing to the totals.`,
		renderStats,
		func(r *analyzer.Report) any { return r.Stats },
	)
}

func newBrandsCommand() *cobra.Command {
	return sectionCommand("brands",
		"Show per-brand profiles",
		`Show one profile per brand in first-seen order: appearances, exposure,
videos, confidence statistics and consistency. Use --verbose for the
per-video breakdown.`,
		renderBrands,
		func(r *analyzer.Report) any { return r.Brands },
	)
}

func newConfidenceCommand() *cobra.Command {
	return sectionCommand("confidence",
		"Show the confidence distribution",
		`Show confidence tiers, the ten-bucket histogram and quality metrics for every
confidence sample in the snapshot, plus each brand's tier counts.`,
		renderConfidence,
		func(r *analyzer.Report) any { return r.Confidence },
	)
}

func newRankCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank [file]",
		Short: "Rank brands or videos by a metric",
		Long: `Rank brands or videos, highest first. Ties keep their input order.

Brand keys:  appearances, exposure, confidence, videos
Video keys:  efficiency, speed, analysis-time, duration

Examples:
  brandsum rank history.json --by exposure
  brandsum rank history.json --target videos --by efficiency --top 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRank,
	}

	cmd.Flags().StringVar(&rankTarget, "target", "brands", "what to rank (brands, videos)")
	cmd.Flags().StringVar(&rankBy, "by", "", "ranking key (default: appearances for brands, efficiency for videos)")
	cmd.Flags().IntVar(&rankTop, "top", 0, "entries to show, 0 shows all")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runRank(cmd *cobra.Command, args []string) error {
	if rankTop < 0 {
		return fmt.Errorf("--top must be non-negative")
	}

	ctx, cancel := analysisContext()
	defer cancel()

	report, err := buildReport(ctx, fileArg(args), "", 0)
	if err != nil {
		return err
	}

	var (
		ranked any
		text   string
	)
	switch rankTarget {
	case "brands":
		key := rankBy
		if key == "" {
			key = analyzer.BrandKeyAppearances
		}
		brands, err := analyzer.RankBrands(report.Brands.Profiles, key)
		if err != nil {
			return err
		}
		brands = limit(brands, rankTop)
		ranked, text = brands, renderBrandRanking(brands, key)
	case "videos":
		key := rankBy
		if key == "" {
			key = analyzer.VideoKeyEfficiency
		}
		videos, err := analyzer.RankVideos(report.Stats.PerVideoPerformance, key)
		if err != nil {
			return err
		}
		videos = limit(videos, rankTop)
		ranked, text = videos, renderVideoRanking(videos, key)
	default:
		return fmt.Errorf("unknown rank target %q (must be one of: brands, videos)", rankTarget)
	}

	var output []byte
	if isJSONOutput() {
		if output, err = marshalJSON(ranked); err != nil {
			return err
		}
	} else {
		output = []byte(text)
	}
	return handleOutputDestination(cmd.OutOrStdout(), output)
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func newTimelineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline <record-id|index>",
		Short: "Show one record's brand timeline",
		Long: `Bucket one record's detections into fixed windows and show per-brand
intensity, activity statistics and trends.

The record is chosen by id or by its 1-based position in the newest-first
listing.

Examples:
  brandsum timeline 1 --file history.json
  brandsum timeline 3f2c9a4e-... --db ~/brandsum.sqlite3 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runTimeline,
	}

	cmd.Flags().StringVarP(&timelineFile, "file", "f", "", "history file to read records from")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runTimeline(cmd *cobra.Command, args []string) error {
	ctx, cancel := analysisContext()
	defer cancel()

	engine, err := buildEngine("", 0)
	if err != nil {
		return err
	}

	records, err := loadRecords(ctx, timelineFile)
	if err != nil {
		return err
	}

	record, err := selectRecord(records, args[0])
	if err != nil {
		return err
	}
	if record.Malformed() {
		GetLogger("timeline").Warn("record %s is malformed; its timeline is empty", args[0])
	}

	output, err := formatter.FormatTimeline(engine.Timeline(record), getOutputFormat(), formatterOptions())
	if err != nil {
		return fmt.Errorf("failed to format timeline: %w", err)
	}
	return handleOutputDestination(cmd.OutOrStdout(), output)
}
