package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/yildizm/BrandSum/internal/analyzer"
)

// csvFormatter formats brand profiles as CSV, one row per brand in first-seen order
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *analyzer.Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Brand",
		"Appearances",
		"Exposure Seconds",
		"Videos",
		"Average Confidence",
		"Min Confidence",
		"Max Confidence",
		"Std Dev",
		"Consistency",
		"High",
		"Medium",
		"Low",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range report.Brands.Profiles {
		record := []string{
			escapeCSVString(p.Name),
			strconv.Itoa(p.TotalAppearances),
			formatCSVFloat(p.TotalExposureSeconds),
			strconv.Itoa(p.VideoCount),
			formatCSVFloat(p.AverageConfidence),
			formatCSVFloat(p.MinConfidence),
			formatCSVFloat(p.MaxConfidence),
			formatCSVFloat(p.StdDev),
			string(p.Consistency),
			strconv.Itoa(p.Tiers.High),
			strconv.Itoa(p.Tiers.Medium),
			strconv.Itoa(p.Tiers.Low),
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

func formatCSVFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// escapeCSVString flattens newlines and truncates long names
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	if r := []rune(s); len(r) > 100 {
		s = string(r[:97]) + "..."
	}

	return s
}
