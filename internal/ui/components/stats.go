package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/BrandSum/internal/analyzer"
)

// StatsCard represents a statistics card component
type StatsCard struct {
	Title       string
	Value       string
	Description string
	Status      string // "success", "warning", "error", "info"
	Icon        string
	Width       int
	Height      int
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value, description string) *StatsCard {
	return &StatsCard{
		Title:       title,
		Value:       value,
		Description: description,
		Status:      "info",
		Width:       20,
		Height:      4,
	}
}

// SetStatus sets the status color of the card
func (s *StatsCard) SetStatus(status string) *StatsCard {
	s.Status = status
	return s
}

// SetIcon sets the icon for the card
func (s *StatsCard) SetIcon(icon string) *StatsCard {
	s.Icon = icon
	return s
}

// SetSize sets the size of the card
func (s *StatsCard) SetSize(width, height int) *StatsCard {
	s.Width = width
	s.Height = height
	return s
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	infoColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	bodyColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	valueStyle := lipgloss.NewStyle().Foreground(statusColor(s.Status)).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(infoColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(bodyColor)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(bodyColor).Padding(0, 1)

	title := titleStyle.Render(s.Title)
	if s.Icon != "" {
		title = s.Icon + " " + title
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		valueStyle.Render(s.Value),
		mutedStyle.Render(s.Description),
	)

	return boxStyle.
		Width(s.Width).
		Height(s.Height).
		Render(content)
}

func statusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "success":
		return lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	case "warning":
		return lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	case "error":
		return lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	case "info":
		return lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	default:
		return lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	}
}

// StatsDashboard represents a grid of stats cards
type StatsDashboard struct {
	cards      []*StatsCard
	columns    int
	cardWidth  int
	cardHeight int
}

// NewStatsDashboard creates a new stats dashboard
func NewStatsDashboard(columns int) *StatsDashboard {
	if columns < 1 {
		columns = 1
	}
	return &StatsDashboard{
		columns:    columns,
		cardWidth:  20,
		cardHeight: 4,
	}
}

// AddCard adds a stats card to the dashboard
func (d *StatsDashboard) AddCard(card *StatsCard) {
	card.SetSize(d.cardWidth, d.cardHeight)
	d.cards = append(d.cards, card)
}

// Cards returns the dashboard's cards in insertion order
func (d *StatsDashboard) Cards() []*StatsCard {
	return d.cards
}

// SetCardSize sets the default size for all cards
func (d *StatsDashboard) SetCardSize(width, height int) {
	d.cardWidth = width
	d.cardHeight = height
	for _, card := range d.cards {
		card.SetSize(width, height)
	}
}

// Render renders the stats dashboard
func (d *StatsDashboard) Render() string {
	if len(d.cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(d.cards); i += d.columns {
		end := min(i+d.columns, len(d.cards))

		rowCards := make([]string, 0, end-i)
		for j := i; j < end; j++ {
			rowCards = append(rowCards, d.cards[j].Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// CreateReportStats creates the overview cards for a report
func CreateReportStats(report *analyzer.Report) *StatsDashboard {
	dashboard := NewStatsDashboard(4)
	d := report.Dashboard

	videos := NewStatsCard("Videos", formatNumber(d.TotalVideos), "analysed")
	if report.MalformedCount > 0 {
		videos.Description = fmt.Sprintf("+%d malformed", report.MalformedCount)
		videos.SetStatus("warning")
	}
	dashboard.AddCard(videos)

	dashboard.AddCard(NewStatsCard("Brands", formatNumber(d.TotalBrands),
		fmt.Sprintf("%s appearances", formatNumber(report.Brands.TotalAppearances))))

	dashboard.AddCard(NewStatsCard("Analysis Time", formatDuration(d.TotalAnalysisSeconds),
		fmt.Sprintf("%.2fx real time", report.Stats.AverageProcessingSpeed)))

	confidence := NewStatsCard("Confidence", fmt.Sprintf("%.1f%%", d.AverageConfidence), "appearance-weighted")
	switch {
	case d.TotalBrands == 0:
		confidence.SetStatus("muted")
	case d.AverageConfidence >= 80:
		confidence.SetStatus("success")
	case d.AverageConfidence >= 60:
		confidence.SetStatus("warning")
	default:
		confidence.SetStatus("error")
	}
	dashboard.AddCard(confidence)

	return dashboard
}

// formatNumber formats large numbers with commas
func formatNumber(n int) string {
	str := strconv.Itoa(n)
	if len(str) <= 3 || n < 0 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// formatDuration renders seconds compactly for a card
func formatDuration(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1fm", seconds/60)
	default:
		return fmt.Sprintf("%.1fh", seconds/3600)
	}
}

// SummaryBox creates a summary information box
type SummaryBox struct {
	Title   string
	Content []string
	Width   int
}

// NewSummaryBox creates a new summary box
func NewSummaryBox(title string, width int) *SummaryBox {
	return &SummaryBox{
		Title: title,
		Width: width,
	}
}

// AddLine adds a line to the summary
func (s *SummaryBox) AddLine(line string) {
	s.Content = append(s.Content, line)
}

// AddKeyValue adds a key-value pair to the summary
func (s *SummaryBox) AddKeyValue(key, value string) {
	s.Content = append(s.Content, fmt.Sprintf("%-15s: %s", key, value))
}

// Render renders the summary box
func (s *SummaryBox) Render() string {
	headerColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	bodyColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	headerStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(bodyColor).Padding(0, 1)
	bodyStyle := lipgloss.NewStyle().Foreground(bodyColor)

	content := make([]string, 0, len(s.Content)+2)
	content = append(content, headerStyle.Render(s.Title), "")
	for _, line := range s.Content {
		content = append(content, bodyStyle.Render(line))
	}

	box := boxStyle
	if s.Width > 0 {
		box = box.Width(s.Width)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
