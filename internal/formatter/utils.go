package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/go-termfmt"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// FormatSeconds renders a duration in seconds as 1h02m03s, 4m05s or 12.3s
func FormatSeconds(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		return "0.0s"
	}
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}

	total := int(math.Round(seconds))
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// consistencyEmoji returns emoji for consistency tiers using go-termfmt
func consistencyEmoji(tier analyzer.ConsistencyTier, opts *termfmt.TerminalOptions) string {
	switch tier {
	case analyzer.ConsistencyHigh:
		return termfmt.GetEmoji("success", opts)
	case analyzer.ConsistencyMedium:
		return termfmt.GetEmoji("warning", opts)
	case analyzer.ConsistencyLow:
		return termfmt.GetEmoji("error", opts)
	default:
		return termfmt.GetEmoji("info", opts)
	}
}

// efficiencyEmoji returns emoji for processing efficiency tiers
func efficiencyEmoji(tier analyzer.EfficiencyTier, opts *termfmt.TerminalOptions) string {
	switch tier {
	case analyzer.TierRealTimePlus:
		return termfmt.GetEmoji("rocket", opts)
	case analyzer.TierNearRealTime:
		return termfmt.GetEmoji("success", opts)
	default:
		return termfmt.GetEmoji("warning", opts)
	}
}

// createConfidenceBar creates an ASCII bar for a 0-100 confidence percentage
func createConfidenceBar(percent float64, opts *termfmt.TerminalOptions) string {
	ratio := percent / 100
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return termfmt.CreateConfidenceBar(ratio, opts)
}

// histogramBar renders count relative to max as a fixed-width bar
func histogramBar(count, max, width int) string {
	filled := 0
	if max > 0 {
		filled = int(math.Round(float64(count) / float64(max) * float64(width)))
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// generateRecommendations derives follow-ups from a report
func generateRecommendations(report *analyzer.Report) []string {
	var recommendations []string

	if report.MalformedCount > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Repair or re-run %d malformed record(s); they count as zero in timing averages", report.MalformedCount))
	}

	for _, p := range report.Brands.Profiles {
		if p.Consistency == analyzer.ConsistencyLow {
			recommendations = append(recommendations,
				fmt.Sprintf("Review detection quality for %s (confidence varies by %.1f points across videos)", p.Name, p.StdDev))
		}
	}

	overall := report.Confidence.Overall
	if overall.Total > 0 {
		lowShare := float64(overall.Low) / float64(overall.Total) * 100
		if lowShare >= 30 {
			recommendations = append(recommendations,
				fmt.Sprintf("%.0f%% of confidence samples are below 60%%; consider raising the detection threshold", lowShare))
		}
	}

	delayed := 0
	for _, v := range report.Stats.PerVideoPerformance {
		if !v.Malformed && v.EfficiencyTier == analyzer.TierDelayed {
			delayed++
		}
	}
	if delayed > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("%d video(s) were analysed at less than half real-time speed", delayed))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Detection confidence is consistent across all analysed videos",
			"Track new uploads with `brandsum watch` to catch regressions early")
	}

	return recommendations
}
