package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/go-termfmt"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	opts    Options
	barOpts *termfmt.TerminalOptions
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown(opts Options) Formatter {
	barOpts := termfmt.DefaultOptions()
	barOpts.Color = false
	barOpts.Emoji = opts.Emoji
	return &markdownFormatter{opts: opts, barOpts: barOpts}
}

func (f *markdownFormatter) Format(report *analyzer.Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Brand Exposure Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format(f.opts.TimestampFormat))

	f.writeTableOfContents(&b, report)
	f.writeSummaryTable(&b, report)

	if len(report.Rankings) > 0 {
		f.writeBrandSection(&b, report)
	}

	if report.Confidence.Overall.Total > 0 {
		f.writeConfidenceSection(&b, report.Confidence)
	}

	if len(report.Stats.PerVideoPerformance) > 0 {
		f.writePerformanceSection(&b, report.Stats)
	}

	f.writeRecommendations(&b, report)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, report *analyzer.Report) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Summary](#summary)\n")

	if len(report.Rankings) > 0 {
		b.WriteString("- [Brands](#brands)\n")
	}
	if report.Confidence.Overall.Total > 0 {
		b.WriteString("- [Confidence](#confidence)\n")
	}
	if len(report.Stats.PerVideoPerformance) > 0 {
		b.WriteString("- [Performance](#performance)\n")
	}

	b.WriteString("- [Recommendations](#recommendations)\n\n")
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *analyzer.Report) {
	b.WriteString("## Summary\n\n")

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Videos | %s |\n", formatNumber(report.Dashboard.TotalVideos))
	if report.MalformedCount > 0 {
		fmt.Fprintf(b, "| Malformed Records | %d |\n", report.MalformedCount)
	}
	fmt.Fprintf(b, "| Distinct Brands | %d |\n", report.Dashboard.TotalBrands)
	fmt.Fprintf(b, "| Total Appearances | %s |\n", formatNumber(report.Brands.TotalAppearances))
	fmt.Fprintf(b, "| Total Exposure | %s |\n", FormatSeconds(report.Brands.TotalExposureSeconds))
	fmt.Fprintf(b, "| Analysis Time | %s |\n", FormatSeconds(report.Dashboard.TotalAnalysisSeconds))
	fmt.Fprintf(b, "| Average Confidence | %.1f%% |\n\n", report.Dashboard.AverageConfidence)
}

func (f *markdownFormatter) writeBrandSection(b *strings.Builder, report *analyzer.Report) {
	b.WriteString("## Brands\n\n")
	fmt.Fprintf(b, "Ranked by %s.\n\n", report.RankedBy)

	b.WriteString("| # | Brand | Appearances | Exposure | Videos | Confidence | Consistency |\n")
	b.WriteString("|---|-------|-------------|----------|--------|------------|-------------|\n")
	for _, r := range report.Rankings {
		p := r.Item
		fmt.Fprintf(b, "| %d | %s | %d | %s | %d | %s %.1f%% | %s |\n",
			r.Rank, escapeMarkdown(p.Name), p.TotalAppearances, FormatSeconds(p.TotalExposureSeconds),
			p.VideoCount, createConfidenceBar(p.AverageConfidence, f.barOpts), p.AverageConfidence, p.Consistency)
	}
	b.WriteString("\n")

	if !f.opts.Verbose {
		return
	}

	for _, r := range report.Rankings {
		p := r.Item
		if len(p.Videos) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s\n\n", escapeMarkdown(p.Name))
		fmt.Fprintf(b, "Confidence range %.1f%% to %.1f%%, std dev %.1f. Tiers: %d high, %d medium, %d low.\n\n",
			p.MinConfidence, p.MaxConfidence, p.StdDev, p.Tiers.High, p.Tiers.Medium, p.Tiers.Low)
		b.WriteString("| Video | Timestamp | Duration | Appearances | Confidence |\n")
		b.WriteString("|-------|-----------|----------|-------------|------------|\n")
		for _, v := range p.Videos {
			id := v.RecordID
			if id == "" {
				id = fmt.Sprintf("#%d", v.RecordIndex+1)
			}
			fmt.Fprintf(b, "| %s | %s | %s | %d | %.1f%% |\n",
				escapeMarkdown(id), v.RecordTimestamp, FormatSeconds(v.VideoDuration), v.Appearances, v.AverageConfidence)
		}
		b.WriteString("\n")
	}
}

func (f *markdownFormatter) writeConfidenceSection(b *strings.Builder, c analyzer.ConfidenceReport) {
	b.WriteString("## Confidence\n\n")

	fmt.Fprintf(b, "**Samples**: %d, average %.1f%%\n\n", c.Overall.Total, c.Overall.Average)
	b.WriteString("| Tier | Count |\n")
	b.WriteString("|------|-------|\n")
	fmt.Fprintf(b, "| High (>=80%%) | %d |\n", c.Overall.High)
	fmt.Fprintf(b, "| Medium (60-80%%) | %d |\n", c.Overall.Medium)
	fmt.Fprintf(b, "| Low (<60%%) | %d |\n\n", c.Overall.Low)

	maxCount := 0
	for _, bucket := range c.Histogram {
		if bucket.Count > maxCount {
			maxCount = bucket.Count
		}
	}

	b.WriteString("```\n")
	for _, bucket := range c.Histogram {
		fmt.Fprintf(b, "%7s │%s│ %d (%.1f%%)\n", bucket.Label, histogramBar(bucket.Count, maxCount, 20), bucket.Count, bucket.Percentage)
	}
	b.WriteString("```\n\n")

	fmt.Fprintf(b, "**Quality**: %d excellent, %d good, %d fair, %d poor\n\n",
		c.Quality.Excellent, c.Quality.Good, c.Quality.Fair, c.Quality.Poor)
}

func (f *markdownFormatter) writePerformanceSection(b *strings.Builder, s analyzer.OverallStats) {
	b.WriteString("## Performance\n\n")

	fmt.Fprintf(b, "**Average speed**: %.2fx real time, **average FPS**: %.1f, **frames**: %s\n\n",
		s.AverageProcessingSpeed, s.AverageFPS, formatNumber(s.TotalFramesProcessed))

	b.WriteString("| # | Video | Duration | Analysis | Speed | Tier | Brands |\n")
	b.WriteString("|---|-------|----------|----------|-------|------|--------|\n")
	for _, v := range s.PerVideoPerformance {
		if v.Malformed {
			fmt.Fprintf(b, "| %d | %s | - | - | - | malformed | - |\n", v.Index, escapeMarkdown(VideoLabel(v)))
			continue
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %.2fx | %s | %d |\n",
			v.Index, escapeMarkdown(VideoLabel(v)), FormatSeconds(v.VideoSeconds), FormatSeconds(v.AnalysisSeconds),
			v.ProcessingSpeed, v.EfficiencyTier, v.BrandCount)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeRecommendations(b *strings.Builder, report *analyzer.Report) {
	b.WriteString("## Recommendations\n\n")

	for i, rec := range generateRecommendations(report) {
		fmt.Fprintf(b, "%d. %s\n", i+1, rec)
	}

	b.WriteString("\n---\n")
	b.WriteString("*Report generated by BrandSum - Brand Exposure Analytics*\n")
}

// VideoLabel names a video by title, then id, then position
func VideoLabel(v analyzer.VideoPerformance) string {
	switch {
	case v.Title != "":
		return v.Title
	case v.RecordID != "":
		return v.RecordID
	default:
		return fmt.Sprintf("video %d", v.Index)
	}
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
