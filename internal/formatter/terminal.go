package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/go-termfmt"
)

const maxTerminalVideos = 10

var (
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts     *termfmt.TerminalOptions
	color    bool
	compact  bool
	showMore bool
}

// NewTerminal creates a new terminal formatter
func NewTerminal(o Options) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = o.Color
	opts.Emoji = o.Emoji
	return &terminalFormatter{opts: opts, color: o.Color, compact: o.Compact, showMore: o.Verbose}
}

func (f *terminalFormatter) Format(report *analyzer.Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeStatistics(&b, report)

	if len(report.Rankings) > 0 {
		f.writeTopBrands(&b, report)
	}

	if report.Confidence.Overall.Total > 0 {
		f.writeConfidence(&b, report.Confidence)
	}

	if !f.compact && len(report.Stats.PerVideoPerformance) > 0 {
		f.writePerformance(&b, report.Stats)
	}

	f.writeTextRecommendations(&b, report)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Brand Exposure Summary"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + f.paint(headerStyle, header) + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

func (f *terminalFormatter) writeStatistics(b *strings.Builder, report *analyzer.Report) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Statistics\n")

	videos := formatNumber(report.Dashboard.TotalVideos)
	if report.MalformedCount > 0 {
		videos = fmt.Sprintf("%s (+%d malformed)", videos, report.MalformedCount)
	}

	items := []termfmt.TreeItem{
		{Label: "Videos", Value: videos},
		{Label: "Distinct Brands", Value: formatNumber(report.Dashboard.TotalBrands)},
		{Label: "Appearances", Value: formatNumber(report.Brands.TotalAppearances)},
		{Label: "Exposure", Value: FormatSeconds(report.Brands.TotalExposureSeconds)},
		{Label: "Analysis Time", Value: FormatSeconds(report.Dashboard.TotalAnalysisSeconds)},
		{Label: "Average Confidence", Value: f.paintPercent(report.Dashboard.AverageConfidence), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeTopBrands lists the ranked brands with a confidence bar each
func (f *terminalFormatter) writeTopBrands(b *strings.Builder, report *analyzer.Report) {
	symbol := termfmt.GetEmoji("tag", f.opts)
	fmt.Fprintf(b, "%s Top Brands (by %s)\n", symbol, report.RankedBy)

	items := make([]termfmt.TreeItem, 0, len(report.Rankings))
	for i, r := range report.Rankings {
		p := r.Item
		item := termfmt.TreeItem{
			Label: fmt.Sprintf("%d. %s %s", r.Rank, consistencyEmoji(p.Consistency, f.opts), p.Name),
			Value: fmt.Sprintf("%d appearances in %d video(s), %s", p.TotalAppearances, p.VideoCount, FormatSeconds(p.TotalExposureSeconds)),
			Last:  i == len(report.Rankings)-1,
		}
		if !f.compact {
			item.Children = []termfmt.TreeItem{
				{Label: createConfidenceBar(p.AverageConfidence, f.opts), Value: fmt.Sprintf("%s, consistency %s", f.paintPercent(p.AverageConfidence), p.Consistency)},
			}
			if f.showMore && len(p.ConfidenceSamples) > 0 {
				item.Children = append(item.Children, termfmt.TreeItem{
					Label: "Range",
					Value: fmt.Sprintf("%.1f%% - %.1f%%, std dev %.1f", p.MinConfidence, p.MaxConfidence, p.StdDev),
				})
			}
			item.Children[len(item.Children)-1].Last = true
		}
		items = append(items, item)
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

func (f *terminalFormatter) writeConfidence(b *strings.Builder, c analyzer.ConfidenceReport) {
	symbol := termfmt.GetEmoji("scale", f.opts)
	b.WriteString(symbol + " Confidence Distribution\n")

	items := []termfmt.TreeItem{
		{Label: "Samples", Value: fmt.Sprintf("%d (average %.1f%%)", c.Overall.Total, c.Overall.Average)},
		{Label: "High", Value: f.paint(highStyle, fmt.Sprintf("%d", c.Overall.High))},
		{Label: "Medium", Value: f.paint(mediumStyle, fmt.Sprintf("%d", c.Overall.Medium))},
		{Label: "Low", Value: f.paint(lowStyle, fmt.Sprintf("%d", c.Overall.Low)), Last: f.compact},
	}
	if !f.compact {
		items = append(items, termfmt.TreeItem{
			Label: "Quality",
			Value: fmt.Sprintf("%d excellent, %d good, %d fair, %d poor",
				c.Quality.Excellent, c.Quality.Good, c.Quality.Fair, c.Quality.Poor),
			Last: true,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n")

	if !f.compact {
		maxCount := 0
		for _, bucket := range c.Histogram {
			if bucket.Count > maxCount {
				maxCount = bucket.Count
			}
		}
		for _, bucket := range c.Histogram {
			if bucket.Count == 0 {
				continue
			}
			fmt.Fprintf(b, "   %7s │%s│ %d\n", bucket.Label, histogramBar(bucket.Count, maxCount, 20), bucket.Count)
		}
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writePerformance(b *strings.Builder, s analyzer.OverallStats) {
	symbol := termfmt.GetEmoji("rocket", f.opts)
	b.WriteString(symbol + " Performance\n")

	fmt.Fprintf(b, "Average speed %.2fx, %.1f fps, %s frames\n",
		s.AverageProcessingSpeed, s.AverageFPS, formatNumber(s.TotalFramesProcessed))

	videos := s.PerVideoPerformance
	if len(videos) > maxTerminalVideos && !f.showMore {
		videos = videos[:maxTerminalVideos]
	}
	for i, v := range videos {
		branch := "├─"
		if i == len(videos)-1 {
			branch = "└─"
		}
		if v.Malformed {
			fmt.Fprintf(b, "%s %s (malformed)\n", branch, VideoLabel(v))
			continue
		}
		fmt.Fprintf(b, "%s %s %s: %s in %s (%.2fx)\n",
			branch, efficiencyEmoji(v.EfficiencyTier, f.opts), VideoLabel(v),
			FormatSeconds(v.VideoSeconds), FormatSeconds(v.AnalysisSeconds), v.ProcessingSpeed)
	}
	if hidden := len(s.PerVideoPerformance) - len(videos); hidden > 0 {
		fmt.Fprintf(b, "   ... %d more (use --verbose)\n", hidden)
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeTextRecommendations(b *strings.Builder, report *analyzer.Report) {
	recommendations := generateRecommendations(report)

	symbol := termfmt.GetEmoji("recommendations", f.opts)
	b.WriteString(symbol + " Recommendations\n")

	for i, rec := range recommendations {
		if i < 3 { // Limit to top 3 recommendations for text format
			b.WriteString("• " + rec + "\n")
		}
	}
}

// paintPercent colours a percentage by its confidence tier
func (f *terminalFormatter) paintPercent(percent float64) string {
	text := fmt.Sprintf("%.1f%%", percent)
	switch {
	case percent >= 80:
		return f.paint(highStyle, text)
	case percent >= 60:
		return f.paint(mediumStyle, text)
	default:
		return f.paint(lowStyle, text)
	}
}

func (f *terminalFormatter) paint(style lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return style.Render(text)
}
