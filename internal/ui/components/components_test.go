package components

import (
	"strings"
	"testing"

	"github.com/yildizm/BrandSum/internal/analyzer"
)

func TestProgressBarRatio(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           float64
	}{
		{"half", 5, 10, 0.5},
		{"empty total", 3, 0, 0},
		{"negative current", -1, 10, 0},
		{"overflow clamps", 12, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewProgressBar(10).SetProgress(tt.current, tt.total)
			if got := bar.Ratio(); got != tt.want {
				t.Errorf("Ratio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressBarRender(t *testing.T) {
	out := NewProgressBar(10).SetLabel("High").SetProgress(3, 4).Render()

	if !strings.HasPrefix(out, "High") {
		t.Errorf("Expected label prefix, got %q", out)
	}
	if !strings.Contains(out, "3/4") || !strings.Contains(out, "75.0%") {
		t.Errorf("Expected counts and percentage, got %q", out)
	}
	if n := strings.Count(out, "█"); n != 8 {
		t.Errorf("Expected 8 filled cells, got %d", n)
	}
}

func TestSpinner(t *testing.T) {
	s := NewSpinner()
	s.SetLabel("Loading")

	for range spinnerFrames {
		s.Tick()
	}
	if s.Frame != 0 {
		t.Errorf("Expected spinner to wrap around, got frame %d", s.Frame)
	}
	if out := s.Render(); !strings.Contains(out, spinnerFrames[0]) || !strings.HasSuffix(out, "Loading") {
		t.Errorf("Unexpected spinner render %q", out)
	}
}

func TestSparklineChart(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{"scaled to range", []float64{0, 50, 100}, 3, " ▄█"},
		{"small value visible", []float64{0, 1, 100}, 3, " ▁█"},
		{"flat series", []float64{5, 5}, 2, "  "},
		{"sampled", []float64{0, 0, 100, 100}, 2, " █"},
		{"empty", nil, 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewSparklineChart(tt.values, tt.width).Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimelineChart(t *testing.T) {
	empty := NewTimelineChart("Empty", nil, 60).Render()
	if !strings.Contains(empty, "No timeline data available") {
		t.Errorf("Expected empty message, got:\n%s", empty)
	}

	analysis := &analyzer.TimelineAnalysis{
		Timeline: &analyzer.Timeline{
			Brands:        []string{"nike", "adidas"},
			BucketSeconds: 5,
			Buckets: []analyzer.TimelineBucket{
				{Index: 0, StartSeconds: 0, Values: []int{90, 0}},
				{Index: 1, StartSeconds: 5, Values: []int{0, 60}},
			},
		},
		Stats: analyzer.TimelineStats{TotalBuckets: 2, ActiveBuckets: 2, BucketSeconds: 5},
		Trends: []analyzer.TimelineTrend{
			{Brand: "nike", Type: "decreasing"},
			{Brand: "adidas", Type: "stable"},
		},
	}

	out := NewTimelineChart("Cup final", analysis, 60).Render()
	for _, want := range []string{"Cup final", "nike", "adidas", "Buckets: 2 of 5s", "nike decreasing"} {
		if !strings.Contains(out, want) {
			t.Errorf("Timeline chart missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "adidas stable") {
		t.Error("Stable trends should be left out of the summary")
	}
}

func TestCreateReportStats(t *testing.T) {
	report := &analyzer.Report{
		MalformedCount: 2,
		Dashboard: analyzer.Dashboard{
			TotalVideos:          1200,
			TotalBrands:          4,
			TotalAnalysisSeconds: 90,
			AverageConfidence:    72.5,
		},
		Brands: analyzer.BrandAggregate{TotalAppearances: 15},
	}

	cards := CreateReportStats(report).Cards()
	if len(cards) != 4 {
		t.Fatalf("Expected 4 cards, got %d", len(cards))
	}

	tests := []struct {
		title, value, status string
	}{
		{"Videos", "1,200", "warning"},
		{"Brands", "4", "info"},
		{"Analysis Time", "1.5m", "info"},
		{"Confidence", "72.5%", "warning"},
	}
	for i, tt := range tests {
		c := cards[i]
		if c.Title != tt.title || c.Value != tt.value || c.Status != tt.status {
			t.Errorf("Card %d = %s/%s/%s, want %s/%s/%s", i, c.Title, c.Value, c.Status, tt.title, tt.value, tt.status)
		}
	}
	if cards[0].Description != "+2 malformed" {
		t.Errorf("Unexpected videos description %q", cards[0].Description)
	}

	empty := CreateReportStats(&analyzer.Report{}).Cards()
	if empty[3].Status != "muted" {
		t.Errorf("Expected muted confidence card without brands, got %q", empty[3].Status)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		1234567: "1,234,567",
		-4200:   "-4200",
	}
	for n, want := range tests {
		if got := formatNumber(n); got != want {
			t.Errorf("formatNumber(%d) = %q, want %q", n, got, want)
		}
	}
}
