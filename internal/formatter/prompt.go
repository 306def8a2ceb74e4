package formatter

import (
	"strings"

	"github.com/yildizm/BrandSum/internal/analyzer"
)

// promptFormatter renders the report as an LLM prompt
type promptFormatter struct{}

// NewPrompt creates a formatter emitting a ready-to-send analysis prompt
func NewPrompt() Formatter {
	return &promptFormatter{}
}

func (f *promptFormatter) Format(report *analyzer.Report) ([]byte, error) {
	pattern := analyzer.NewBrandReportPattern().WithReport(report)
	if n := len(report.Rankings); n > 0 {
		pattern = pattern.WithSampleSize(n)
	}
	prompt := pattern.Build()

	var b strings.Builder
	if prompt.SystemPrompt != "" {
		b.WriteString("# System\n\n")
		b.WriteString(prompt.SystemPrompt)
		b.WriteString("\n\n# Prompt\n\n")
	}
	b.WriteString(prompt.String())
	b.WriteString("\n")

	return []byte(b.String()), nil
}
