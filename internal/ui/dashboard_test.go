package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/BrandSum/internal/common"
)

func testRecords() []*common.AnalysisRecord {
	return []*common.AnalysisRecord{
		{
			ID:                "v1",
			Timestamp:         "2024-05-01T12:00:00",
			TotalAnalysisTime: common.Float(10),
			VideoInfo:         &common.VideoInfo{Duration: common.Float(30), FPS: common.Float(25), Title: "Cup final"},
			BrandAnalysis: common.NewBrandAnalysis(
				common.BrandEntry{Name: "nike", Detection: common.BrandDetection{
					Appearances:       common.Int(2),
					TotalSeconds:      common.Float(6),
					AverageConfidence: common.Float(0.9),
					Timestamps:        []float64{2, 12},
					ConfidenceScores:  []*float64{common.Float(0.95), common.Float(0.85)},
				}},
				common.BrandEntry{Name: "adidas", Detection: common.BrandDetection{
					Appearances:       common.Int(1),
					TotalSeconds:      common.Float(2),
					AverageConfidence: common.Float(0.5),
					Timestamps:        []float64{20},
					ConfidenceScores:  []*float64{common.Float(0.5)},
				}},
			),
		},
		{ID: "broken"},
	}
}

func testLoad(t *testing.T) LoadFunc {
	t.Helper()
	engine := analyzer.NewEngine()
	return func(ctx context.Context) (*Snapshot, error) {
		records := testRecords()
		report, err := engine.Analyze(ctx, records)
		if err != nil {
			return nil, err
		}
		return &Snapshot{Records: records, Report: report, Timeline: engine.Timeline}, nil
	}
}

// loadedModel returns a sized dashboard with its first load applied
func loadedModel(t *testing.T) *DashboardModel {
	t.Helper()

	m := NewDashboardModel(testLoad(t))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	msg := CreateReportCommand(m.load)()
	complete, ok := msg.(reportCompleteMsg)
	if !ok {
		t.Fatalf("Expected reportCompleteMsg, got %T", msg)
	}
	m.Update(complete)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboardLoading(t *testing.T) {
	m := NewDashboardModel(testLoad(t))

	if view := m.View(); !strings.Contains(view, "Initializing") {
		t.Errorf("Expected initializing view before sizing, got %q", view)
	}

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !m.loading {
		t.Fatal("Expected dashboard to start loading")
	}
	if view := m.View(); !strings.Contains(view, "Aggregating") {
		t.Errorf("Expected loading view, got %q", view)
	}

	frame := m.spinner.Frame
	if _, cmd := m.Update(tickMsg{}); cmd == nil {
		t.Error("Expected tick to continue while loading")
	}
	if m.spinner.Frame == frame {
		t.Error("Expected spinner to advance")
	}
}

func TestDashboardTabs(t *testing.T) {
	m := loadedModel(t)

	if m.loading || m.snapshot == nil {
		t.Fatal("Expected snapshot to be loaded")
	}

	view := m.View()
	for _, want := range []string{"BrandSum", "Overview", "Top brands by appearances", "nike"} {
		if !strings.Contains(view, want) {
			t.Errorf("Overview missing %q", want)
		}
	}

	tests := []struct {
		key  string
		tab  Tab
		want string
	}{
		{"tab", TabBrands, "sorted by appearances"},
		{"tab", TabConfidence, "Distribution"},
		{"tab", TabPerformance, "Cup final"},
		{"tab", TabOverview, "Top brands"},
		{"shift+tab", TabPerformance, "malformed"},
		{"2", TabBrands, "adidas"},
		{"3", TabConfidence, "Quality"},
		{"1", TabOverview, "malformed record(s) excluded"},
	}

	for _, tt := range tests {
		m.Update(key(tt.key))
		if m.tab != tt.tab {
			t.Fatalf("After %q expected tab %s, got %s", tt.key, tt.tab, m.tab)
		}
		if view := m.View(); !strings.Contains(view, tt.want) {
			t.Errorf("Tab %s missing %q:\n%s", tt.tab, tt.want, view)
		}
	}
}

func TestDashboardBrandSort(t *testing.T) {
	m := loadedModel(t)
	m.Update(key("2"))

	keys := analyzer.BrandRankKeys()
	for i := 1; i <= len(keys); i++ {
		m.Update(key("s"))
		want := keys[i%len(keys)]
		if m.sortKey() != want {
			t.Errorf("Expected sort key %q, got %q", want, m.sortKey())
		}
		if view := m.View(); !strings.Contains(view, "sorted by "+want) {
			t.Errorf("Brands view missing sort key %q", want)
		}
	}

	m.Update(key("down"))
	if m.selected != 1 {
		t.Errorf("Expected selection 1, got %d", m.selected)
	}
	m.Update(key("down"))
	if m.selected != 1 {
		t.Errorf("Expected selection to stop at the last brand, got %d", m.selected)
	}
	m.Update(key("up"))
	m.Update(key("up"))
	if m.selected != 0 {
		t.Errorf("Expected selection to stop at 0, got %d", m.selected)
	}
}

func TestDashboardTimeline(t *testing.T) {
	m := loadedModel(t)
	m.Update(key("4"))

	m.Update(key("enter"))
	if !m.showTimeline {
		t.Fatal("Expected enter to open the timeline")
	}
	view := m.View()
	if !strings.Contains(view, "Buckets:") || !strings.Contains(view, "adidas") {
		t.Errorf("Expected timeline chart:\n%s", view)
	}

	m.Update(key("esc"))
	if m.showTimeline {
		t.Error("Expected esc to close the timeline")
	}

	// the malformed record has an empty timeline
	m.Update(key("down"))
	m.Update(key("enter"))
	if view := m.View(); !strings.Contains(view, "No timeline data available") {
		t.Errorf("Expected empty timeline:\n%s", view)
	}
}

func TestDashboardHelpAndQuit(t *testing.T) {
	m := loadedModel(t)

	m.Update(key("?"))
	if view := m.View(); !strings.Contains(view, "cycle brand sort key") {
		t.Errorf("Expected help view:\n%s", view)
	}
	m.Update(key("esc"))
	if m.showHelp {
		t.Error("Expected esc to close help")
	}

	_, cmd := m.Update(key("q"))
	if !m.quitting || cmd == nil {
		t.Error("Expected q to quit")
	}
	if view := m.View(); !strings.Contains(view, "Thanks for using BrandSum") {
		t.Errorf("Unexpected quit view: %q", view)
	}
}

func TestDashboardReloadAndError(t *testing.T) {
	failing := errors.New("store unavailable")
	m := NewDashboardModel(func(context.Context) (*Snapshot, error) { return nil, failing })
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	msg := CreateReportCommand(m.load)()
	if _, ok := msg.(reportErrorMsg); !ok {
		t.Fatalf("Expected reportErrorMsg, got %T", msg)
	}
	m.Update(msg)

	if m.loading || !errors.Is(m.err, failing) {
		t.Fatalf("Expected error state, got loading=%v err=%v", m.loading, m.err)
	}
	if view := m.View(); !strings.Contains(view, "store unavailable") {
		t.Errorf("Expected error view:\n%s", view)
	}

	// navigation is ignored without a snapshot
	m.Update(key("2"))
	if m.tab != TabOverview {
		t.Error("Expected tab switch to be ignored without data")
	}

	_, cmd := m.Update(key("r"))
	if cmd == nil || !m.loading || m.err != nil {
		t.Error("Expected r to start a reload")
	}
}

func TestCreateReportCommandValidation(t *testing.T) {
	tests := []struct {
		name string
		load LoadFunc
	}{
		{"nil load", nil},
		{"nil snapshot", func(context.Context) (*Snapshot, error) { return nil, nil }},
		{"nil report", func(context.Context) (*Snapshot, error) { return &Snapshot{}, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := CreateReportCommand(tt.load)().(reportErrorMsg); !ok {
				t.Error("Expected reportErrorMsg")
			}
		})
	}
}

func TestSetThemeByName(t *testing.T) {
	defer SetTheme(&DefaultTheme)

	for _, name := range GetAvailableThemes() {
		if !SetThemeByName(name) {
			t.Errorf("Expected theme %q to be available", name)
		}
		if GetTheme().Name != name {
			t.Errorf("Expected active theme %q, got %q", name, GetTheme().Name)
		}
	}

	if SetThemeByName("neon") {
		t.Error("Expected unknown theme to be rejected")
	}
	if !SetThemeByName("") || GetTheme().Name != "default" {
		t.Error("Expected empty name to select the default theme")
	}
}

func TestTabString(t *testing.T) {
	if TabConfidence.String() != "Confidence" {
		t.Errorf("Unexpected tab name %q", TabConfidence.String())
	}
	if Tab(9).String() != "Unknown" {
		t.Errorf("Expected Unknown for out of range tab")
	}
}

func TestVideoName(t *testing.T) {
	tests := []struct {
		name  string
		video analyzer.VideoPerformance
		want  string
	}{
		{"title", analyzer.VideoPerformance{Title: "Cup final", RecordID: "v1"}, "Cup final"},
		{"record id", analyzer.VideoPerformance{RecordID: "v1"}, "v1"},
		{"index", analyzer.VideoPerformance{Index: 3}, "video 3"},
		{"long ascii", analyzer.VideoPerformance{Title: strings.Repeat("x", 40)}, strings.Repeat("x", 29) + "…"},
		{"long hangul", analyzer.VideoPerformance{Title: strings.Repeat("주간", 20)}, string([]rune(strings.Repeat("주간", 20))[:29]) + "…"},
		{"30 runes kept", analyzer.VideoPerformance{Title: strings.Repeat("한", 30)}, strings.Repeat("한", 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := videoName(tt.video)
			if got != tt.want {
				t.Errorf("videoName() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("videoName() produced invalid UTF-8: %q", got)
			}
		})
	}
}
