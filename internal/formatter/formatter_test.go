package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/BrandSum/internal/common"
)

func brand(name string, appearances int, seconds, avg float64) common.BrandEntry {
	return common.BrandEntry{
		Name: name,
		Detection: common.BrandDetection{
			Appearances:       common.Int(appearances),
			TotalSeconds:      common.Float(seconds),
			AverageConfidence: common.Float(avg),
		},
	}
}

func testRecords() []*common.AnalysisRecord {
	return []*common.AnalysisRecord{
		{
			ID:                "r1",
			Timestamp:         "2024-02-01T10:00:00",
			TotalAnalysisTime: common.Float(5),
			VideoInfo:         &common.VideoInfo{Duration: common.Float(20), FPS: common.Float(30), Title: "Match highlights"},
			BrandAnalysis:     common.NewBrandAnalysis(brand("nike", 2, 10, 0.9), brand("adidas", 7, 3, 0.7)),
		},
		{
			ID:                "r2",
			Timestamp:         "2024-02-03T10:00:00",
			TotalAnalysisTime: common.Float(10),
			VideoInfo:         &common.VideoInfo{Duration: common.Float(10), FPS: common.Float(30)},
			BrandAnalysis:     common.NewBrandAnalysis(brand("nike", 5, 4, 0.5)),
		},
	}
}

func testReport(t *testing.T, records []*common.AnalysisRecord) *analyzer.Report {
	t.Helper()
	engine := analyzer.NewEngine(analyzer.WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	}))
	report, err := engine.Analyze(context.Background(), records)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return report
}

func TestNewFormatter(t *testing.T) {
	for _, format := range append(Formats(), "", "md", "TEXT") {
		if _, err := New(format, DefaultOptions()); err != nil {
			t.Errorf("New(%q) failed: %v", format, err)
		}
	}

	if _, err := New("yaml", DefaultOptions()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestTerminalFormatter(t *testing.T) {
	report := testReport(t, testRecords())

	out, err := NewTerminal(Options{}).Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	for _, want := range []string{"Brand Exposure Summary", "Top Brands (by appearances)", "Confidence Distribution", "Performance", "Match highlights"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
	if strings.Index(text, "1. ") > strings.Index(text, "2. ") {
		t.Error("Rankings out of order")
	}
	if !strings.Contains(text, "nike") || strings.Index(text, "nike") > strings.Index(text, "adidas") {
		t.Error("Tied brands should keep first-seen order")
	}
	if strings.Contains(text, "\x1b[") {
		t.Error("Colour disabled but output contains ANSI escapes")
	}
}

func TestTerminalFormatterCompact(t *testing.T) {
	report := testReport(t, testRecords())

	out, err := NewTerminal(Options{Compact: true}).Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if strings.Contains(string(out), "Performance") {
		t.Error("Compact output should omit the performance section")
	}
}

func TestJSONFormatter(t *testing.T) {
	report := testReport(t, testRecords())

	out, err := NewJSON(false).Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded JSONOutput
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if decoded.Summary.TotalVideos != 2 || decoded.Summary.TotalBrands != 2 {
		t.Errorf("Unexpected summary: %+v", decoded.Summary)
	}
	if decoded.Summary.TotalAppearances != 14 {
		t.Errorf("Expected 14 appearances, got %d", decoded.Summary.TotalAppearances)
	}
	if len(decoded.Rankings) != 2 || decoded.Rankings[0].Brand != "nike" || decoded.Rankings[0].Rank != 1 {
		t.Errorf("Unexpected rankings: %+v", decoded.Rankings)
	}
	if len(decoded.Confidence.Histogram) != 10 {
		t.Errorf("Expected 10 histogram buckets, got %d", len(decoded.Confidence.Histogram))
	}

	compact, err := NewJSON(true).Format(report)
	if err != nil {
		t.Fatalf("Compact format failed: %v", err)
	}
	if bytes.Contains(compact, []byte("\n  ")) {
		t.Error("Compact JSON should not be indented")
	}
}

func TestCSVFormatter(t *testing.T) {
	report := testReport(t, testRecords())

	out, err := NewCSV().Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Brand" || rows[1][0] != "nike" || rows[2][0] != "adidas" {
		t.Errorf("Unexpected rows: %v", rows)
	}
	// nike: samples 90 and 50
	if rows[1][4] != "70.00" || rows[1][8] != "low" {
		t.Errorf("Unexpected nike row: %v", rows[1])
	}
}

func TestMarkdownFormatter(t *testing.T) {
	report := testReport(t, testRecords())

	out, err := NewMarkdown(Options{TimestampFormat: "2006-01-02", Verbose: true}).Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"# Brand Exposure Report",
		"Generated: 2024-03-01",
		"- [Brands](#brands)",
		"| 1 | nike | 7 |",
		"### adidas",
		"## Confidence",
		"| 2 | r2 |",
		"Review detection quality for nike",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in markdown:\n%s", want, text)
		}
	}
}

func TestPromptFormatter(t *testing.T) {
	report := testReport(t, testRecords())

	out, err := NewPrompt().Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	if !strings.Contains(text, "Analyze this BrandSum report") {
		t.Errorf("Prompt missing report request:\n%s", text)
	}
	if !strings.Contains(text, "nike") || !strings.Contains(text, "adidas") {
		t.Errorf("Prompt missing brand context:\n%s", text)
	}
}

func TestEmptyReport(t *testing.T) {
	report := testReport(t, nil)

	for _, format := range Formats() {
		f, err := New(format, DefaultOptions())
		if err != nil {
			t.Fatalf("New(%q) failed: %v", format, err)
		}
		if _, err := f.Format(report); err != nil {
			t.Errorf("%s formatter failed on an empty report: %v", format, err)
		}
	}
}

func TestFormatTimeline(t *testing.T) {
	record := &common.AnalysisRecord{
		ID:        "t1",
		VideoInfo: &common.VideoInfo{Duration: common.Float(12)},
		BrandAnalysis: common.NewBrandAnalysis(common.BrandEntry{
			Name: "nike",
			Detection: common.BrandDetection{
				Appearances:      common.Int(3),
				Timestamps:       []float64{0, 5, 10},
				ConfidenceScores: common.Scores(0.9, 0.6, 0.3),
			},
		}),
	}
	analysis := analyzer.NewEngine().Timeline(record)

	out, err := FormatTimeline(analysis, "text", Options{})
	if err != nil {
		t.Fatalf("FormatTimeline failed: %v", err)
	}
	if !strings.Contains(string(out), "nike │█▓▒│") {
		t.Errorf("Unexpected timeline rows:\n%s", out)
	}

	out, err = FormatTimeline(analysis, "json", Options{})
	if err != nil {
		t.Fatalf("FormatTimeline json failed: %v", err)
	}
	var decoded analyzer.TimelineAnalysis
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Timeline JSON invalid: %v", err)
	}
	if decoded.RecordID != "t1" || len(decoded.Timeline.Buckets) != 3 {
		t.Errorf("Unexpected decoded timeline: %+v", decoded)
	}

	if _, err := FormatTimeline(nil, "text", Options{}); err == nil {
		t.Error("Expected error for nil timeline")
	}
	if _, err := FormatTimeline(analysis, "csv", Options{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestIntensityCell(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{0, "·"}, {1, "░"}, {25, "░"}, {26, "▒"}, {50, "▒"}, {75, "▓"}, {76, "█"}, {100, "█"},
	}
	for _, tt := range tests {
		if got := intensityCell(tt.value); got != tt.want {
			t.Errorf("intensityCell(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	seconds := []struct {
		in   float64
		want string
	}{
		{0, "0.0s"}, {12.34, "12.3s"}, {65, "1m05s"}, {3723, "1h02m03s"}, {-4, "0.0s"},
	}
	for _, tt := range seconds {
		if got := FormatSeconds(tt.in); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	numbers := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -2500: "-2,500"}
	for in, want := range numbers {
		if got := formatNumber(in); got != want {
			t.Errorf("formatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateRecommendations(t *testing.T) {
	records := append(testRecords(), &common.AnalysisRecord{ID: "broken"})
	recs := generateRecommendations(testReport(t, records))

	joined := strings.Join(recs, "\n")
	for _, want := range []string{"1 malformed record", "Review detection quality for nike", "below 60%"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected recommendation containing %q, got:\n%s", want, joined)
		}
	}

	calm := generateRecommendations(testReport(t, nil))
	if len(calm) == 0 {
		t.Error("Expected fallback recommendations")
	}
}

func TestEscapeCSVString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		runes int
	}{
		{"short", "Cup final", 9},
		{"newlines flattened", "line one\nline two", 17},
		{"long ascii", strings.Repeat("a", 150), 100},
		{"long hangul", strings.Repeat("하이라이트", 30), 100},
		{"exactly 100 runes", strings.Repeat("é", 100), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := escapeCSVString(tt.in)
			if !utf8.ValidString(got) {
				t.Fatalf("escapeCSVString produced invalid UTF-8: %q", got)
			}
			if n := utf8.RuneCountInString(got); n != tt.runes {
				t.Errorf("Expected %d runes, got %d", tt.runes, n)
			}
			if strings.ContainsAny(got, "\r\n") {
				t.Errorf("Expected newlines to be flattened, got %q", got)
			}
		})
	}
}
