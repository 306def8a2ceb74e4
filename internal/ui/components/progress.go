package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a part of a whole, such as one confidence tier's share
type ProgressBar struct {
	Width   int
	Current int
	Total   int
	Label   string
	Color   lipgloss.AdaptiveColor
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int) *ProgressBar {
	return &ProgressBar{
		Width: width,
		Color: lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"},
	}
}

// SetProgress updates the progress
func (p *ProgressBar) SetProgress(current, total int) *ProgressBar {
	p.Current = current
	p.Total = total
	return p
}

// SetLabel sets the progress label
func (p *ProgressBar) SetLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// SetColor sets the filled part's color
func (p *ProgressBar) SetColor(color lipgloss.AdaptiveColor) *ProgressBar {
	p.Color = color
	return p
}

// Ratio returns Current/Total clamped to [0, 1]; an empty total is 0
func (p *ProgressBar) Ratio() float64 {
	if p.Total <= 0 || p.Current <= 0 {
		return 0
	}
	return min(float64(p.Current)/float64(p.Total), 1)
}

// Render renders the progress bar
func (p *ProgressBar) Render() string {
	filledStyle := lipgloss.NewStyle().Foreground(p.Color).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	ratio := p.Ratio()
	filledWidth := int(float64(p.Width)*ratio + 0.5)
	emptyWidth := p.Width - filledWidth

	bar := filledStyle.Render(strings.Repeat("█", filledWidth)) + mutedStyle.Render(strings.Repeat("░", emptyWidth))
	result := fmt.Sprintf("%s %d/%d %5.1f%%", bar, p.Current, p.Total, ratio*100)

	if p.Label != "" {
		result = fmt.Sprintf("%-16s %s", p.Label, result)
	}
	return result
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame int
	Label string
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{}
}

// SetLabel sets the spinner label
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	progressStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	spinner := progressStyle.Render(spinnerFrames[s.Frame])

	if s.Label != "" {
		return fmt.Sprintf("%s %s", spinner, s.Label)
	}
	return spinner
}
