package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/BrandSum/internal/analyzer"
)

// TimelineChart shows one sparkline row per brand of a record's timeline
type TimelineChart struct {
	Title    string
	Analysis *analyzer.TimelineAnalysis
	Width    int
}

// NewTimelineChart creates a new timeline chart
func NewTimelineChart(title string, analysis *analyzer.TimelineAnalysis, width int) *TimelineChart {
	return &TimelineChart{
		Title:    title,
		Analysis: analysis,
		Width:    width,
	}
}

// Render renders the timeline chart
func (t *TimelineChart) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})

	content := []string{titleStyle.Render(t.Title), ""}

	if t.Analysis == nil || t.Analysis.Timeline == nil || len(t.Analysis.Timeline.Buckets) == 0 || len(t.Analysis.Timeline.Brands) == 0 {
		content = append(content, mutedStyle.Render("No timeline data available"))
		return t.box(content)
	}

	tl := t.Analysis.Timeline
	labelWidth := 0
	for _, brand := range tl.Brands {
		labelWidth = max(labelWidth, len(brand))
	}
	chartWidth := max(t.Width-labelWidth-8, 10)

	for i, brand := range tl.Brands {
		values := make([]float64, len(tl.Buckets))
		for j, bucket := range tl.Buckets {
			values[j] = float64(bucket.Values[i])
		}
		spark := NewSparklineChart(values, chartWidth)
		spark.Min, spark.Max = 0, 100
		content = append(content, fmt.Sprintf("%-*s │%s", labelWidth, brand, spark.Render()))
	}

	content = append(content, "", mutedStyle.Render(t.renderSummary()))
	return t.box(content)
}

func (t *TimelineChart) box(content []string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).
		Padding(0, 1)
	if t.Width > 0 {
		style = style.Width(t.Width)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// renderSummary renders bucket and trend information
func (t *TimelineChart) renderSummary() string {
	stats := t.Analysis.Stats
	summary := []string{
		fmt.Sprintf("Buckets: %d of %gs", stats.TotalBuckets, stats.BucketSeconds),
		fmt.Sprintf("Active: %d", stats.ActiveBuckets),
	}

	trends := make([]string, 0, len(t.Analysis.Trends))
	for _, trend := range t.Analysis.Trends {
		if trend.Type != "stable" {
			trends = append(trends, fmt.Sprintf("%s %s", trend.Brand, trend.Type))
		}
	}
	if len(trends) > 0 {
		summary = append(summary, "Trends: "+strings.Join(trends, ", "))
	}

	return strings.Join(summary, " | ")
}

// SparklineChart represents a compact sparkline chart
type SparklineChart struct {
	Values []float64
	Width  int
	Min    float64
	Max    float64
}

// NewSparklineChart creates a sparkline scaled to the values' own range
func NewSparklineChart(values []float64, width int) *SparklineChart {
	s := &SparklineChart{Values: values, Width: width}
	for i, v := range values {
		if i == 0 || v < s.Min {
			s.Min = v
		}
		if i == 0 || v > s.Max {
			s.Max = v
		}
	}
	return s
}

// Render renders the sparkline chart. Values beyond Width are sampled.
func (s *SparklineChart) Render() string {
	if len(s.Values) == 0 || s.Width <= 0 {
		return ""
	}

	// Sparkline characters (from lowest to highest)
	chars := []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

	step := len(s.Values) / s.Width
	if step == 0 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < s.Width && i*step < len(s.Values); i++ {
		value := s.Values[i*step]

		normalized := 0.0
		if s.Max > s.Min {
			normalized = (value - s.Min) / (s.Max - s.Min)
		}
		normalized = min(max(normalized, 0), 1)

		charIndex := int(normalized * float64(len(chars)-1))
		if value > s.Min && charIndex == 0 {
			charIndex = 1
		}
		result.WriteString(chars[charIndex])
	}

	return result.String()
}
