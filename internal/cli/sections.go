package cli

import (
	"fmt"
	"strings"

	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/BrandSum/internal/formatter"
)

func renderStats(report *analyzer.Report) string {
	var b strings.Builder
	s := report.Stats

	fmt.Fprintf(&b, "%s Processing Statistics\n", GetEmoji("statistics"))
	fmt.Fprintf(&b, "  Videos:              %d", s.RecordCount)
	if report.MalformedCount > 0 {
		fmt.Fprintf(&b, " (%d malformed)", report.MalformedCount)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Total analysis time: %s\n", formatter.FormatSeconds(s.TotalAnalysisSeconds))
	fmt.Fprintf(&b, "  Total video time:    %s\n", formatter.FormatSeconds(s.TotalVideoSeconds))
	fmt.Fprintf(&b, "  Avg analysis time:   %s\n", formatter.FormatSeconds(s.AverageAnalysisSeconds))
	fmt.Fprintf(&b, "  Avg speed:           %.2fx real time\n", s.AverageProcessingSpeed)
	fmt.Fprintf(&b, "  Avg FPS:             %.1f\n", s.AverageFPS)
	fmt.Fprintf(&b, "  Frames processed:    %d\n", s.TotalFramesProcessed)

	if len(s.PerVideoPerformance) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\n%s Per-Video Performance\n", GetEmoji("video"))
	for _, v := range s.PerVideoPerformance {
		if v.Malformed {
			fmt.Fprintf(&b, "  %2d. %s %s (malformed)\n", v.Index, GetEmoji("warning"), formatter.VideoLabel(v))
			continue
		}
		fmt.Fprintf(&b, "  %2d. %s %s: %s in %s, %.2fx (%s), %d brand(s)\n",
			v.Index, GetEfficiencyEmoji(v.EfficiencyTier), formatter.VideoLabel(v),
			formatter.FormatSeconds(v.VideoSeconds), formatter.FormatSeconds(v.AnalysisSeconds),
			v.ProcessingSpeed, v.EfficiencyTier, v.BrandCount)
	}
	return b.String()
}

func renderBrands(report *analyzer.Report) string {
	var b strings.Builder
	agg := report.Brands

	fmt.Fprintf(&b, "%s Brands: %d distinct, %d appearances, %s exposure\n",
		GetEmoji("brand"), agg.DistinctBrands, agg.TotalAppearances, formatter.FormatSeconds(agg.TotalExposureSeconds))

	if len(agg.Profiles) == 0 {
		b.WriteString("  No brands detected.\n")
		return b.String()
	}

	for _, p := range agg.Profiles {
		fmt.Fprintf(&b, "\n%s %s\n", GetConsistencyEmoji(p.Consistency), p.Name)
		fmt.Fprintf(&b, "  Appearances: %d in %d video(s), %s exposure\n",
			p.TotalAppearances, p.VideoCount, formatter.FormatSeconds(p.TotalExposureSeconds))
		fmt.Fprintf(&b, "  Confidence:  %s %.1f%% (min %.1f%%, max %.1f%%, std dev %.1f, %s consistency)\n",
			CreateConfidenceBar(p.AverageConfidence), p.AverageConfidence, p.MinConfidence, p.MaxConfidence, p.StdDev, p.Consistency)

		if !isVerbose() {
			continue
		}
		for _, v := range p.Videos {
			id := v.RecordID
			if id == "" {
				id = fmt.Sprintf("#%d", v.RecordIndex+1)
			}
			fmt.Fprintf(&b, "    - %s: %d appearance(s), %.1f%% confidence, %s video\n",
				id, v.Appearances, v.AverageConfidence, formatter.FormatSeconds(v.VideoDuration))
		}
	}
	return b.String()
}

func renderConfidence(report *analyzer.Report) string {
	var b strings.Builder
	c := report.Confidence

	fmt.Fprintf(&b, "%s Confidence Distribution\n", GetEmoji("scale"))
	if c.Overall.Total == 0 {
		b.WriteString("  No confidence samples.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  Samples: %d, average %.1f%%\n", c.Overall.Total, c.Overall.Average)
	fmt.Fprintf(&b, "  High (>=80%%):   %d\n", c.Overall.High)
	fmt.Fprintf(&b, "  Medium (60-80%%): %d\n", c.Overall.Medium)
	fmt.Fprintf(&b, "  Low (<60%%):     %d\n\n", c.Overall.Low)

	for _, bucket := range c.Histogram {
		fmt.Fprintf(&b, "  %7s %s %d (%.1f%%)\n", bucket.Label, CreateConfidenceBar(bucket.Percentage), bucket.Count, bucket.Percentage)
	}

	fmt.Fprintf(&b, "\n  Quality: %d excellent, %d good, %d fair, %d poor\n",
		c.Quality.Excellent, c.Quality.Good, c.Quality.Fair, c.Quality.Poor)

	if len(report.Brands.Profiles) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\n%s Per-Brand Tiers\n", GetEmoji("brand"))
	ranked, err := analyzer.RankBrands(report.Brands.Profiles, analyzer.BrandKeyConfidence)
	if err != nil {
		return b.String()
	}
	for _, r := range ranked {
		p := r.Item
		fmt.Fprintf(&b, "  %-20s %5.1f%%  high %d, medium %d, low %d\n",
			p.Name, p.AverageConfidence, p.Tiers.High, p.Tiers.Medium, p.Tiers.Low)
	}
	return b.String()
}

func renderBrandRanking(ranked []analyzer.Ranked[analyzer.BrandProfile], key string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Brands by %s\n", GetEmoji("target"), key)
	if len(ranked) == 0 {
		b.WriteString("  No brands detected.\n")
	}
	for _, r := range ranked {
		fmt.Fprintf(&b, "  %2d. %-20s %s\n", r.Rank, r.Item.Name, formatScore(r.Score, key))
	}
	return b.String()
}

func renderVideoRanking(ranked []analyzer.Ranked[analyzer.VideoPerformance], key string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Videos by %s\n", GetEmoji("target"), key)
	if len(ranked) == 0 {
		b.WriteString("  No videos.\n")
	}
	for _, r := range ranked {
		fmt.Fprintf(&b, "  %2d. %s %-30s %s\n", r.Rank, GetEfficiencyEmoji(r.Item.EfficiencyTier),
			formatter.VideoLabel(r.Item), formatScore(r.Score, key))
	}
	return b.String()
}

// formatScore renders a ranking score in the key's unit
func formatScore(score float64, key string) string {
	switch key {
	case analyzer.BrandKeyExposure, analyzer.VideoKeyAnalysisTime, analyzer.VideoKeyDuration:
		return formatter.FormatSeconds(score)
	case analyzer.BrandKeyConfidence:
		return fmt.Sprintf("%.1f%%", score)
	case analyzer.VideoKeySpeed, analyzer.VideoKeyEfficiency:
		return fmt.Sprintf("%.2fx", score)
	default:
		return fmt.Sprintf("%.0f", score)
	}
}
