package analyzer

import (
	"testing"

	"github.com/yildizm/BrandSum/internal/common"
)

func TestAggregateStatsSingleRecord(t *testing.T) {
	records := []*common.AnalysisRecord{
		newRecord("r1", "2024-01-01T00:00:00", 5, 20, brand("nike", 2, 10, 0.9)),
	}

	stats := AggregateStats(records)

	if stats.TotalVideoSeconds != 20 {
		t.Errorf("Expected totalVideoSeconds 20, got %f", stats.TotalVideoSeconds)
	}
	if !almostEqual(stats.AverageProcessingSpeed, 0.25) {
		t.Errorf("Expected averageProcessingSpeed 0.25, got %f", stats.AverageProcessingSpeed)
	}

	perf := stats.PerVideoPerformance[0]
	if !almostEqual(perf.Efficiency, 4) {
		t.Errorf("Expected efficiency 4, got %f", perf.Efficiency)
	}
	if perf.EfficiencyTier != TierRealTimePlus {
		t.Errorf("Expected tier %s, got %s", TierRealTimePlus, perf.EfficiencyTier)
	}
	if perf.Frames != 600 {
		t.Errorf("Expected 600 frames, got %d", perf.Frames)
	}
	if perf.BrandCount != 1 || perf.Index != 1 {
		t.Errorf("Unexpected brand count %d or index %d", perf.BrandCount, perf.Index)
	}
}

func TestAggregateStatsDivisionGuards(t *testing.T) {
	records := []*common.AnalysisRecord{
		newRecord("zero-video", "", 5, 0),
		newRecord("zero-analysis", "", 0, 10),
	}

	stats := AggregateStats(records)

	for _, perf := range stats.PerVideoPerformance {
		switch perf.RecordID {
		case "zero-video":
			if perf.ProcessingSpeed != 0 {
				t.Errorf("Expected processing speed 0 for zero duration, got %f", perf.ProcessingSpeed)
			}
			if perf.Efficiency != 0 || perf.EfficiencyTier != TierDelayed {
				t.Errorf("Expected efficiency 0 (delayed), got %f (%s)", perf.Efficiency, perf.EfficiencyTier)
			}
		case "zero-analysis":
			if perf.Efficiency != 0 {
				t.Errorf("Expected efficiency 0 for zero analysis time, got %f", perf.Efficiency)
			}
		}
	}

	if !almostEqual(stats.AverageAnalysisSeconds, 2.5) {
		t.Errorf("Expected average analysis 2.5, got %f", stats.AverageAnalysisSeconds)
	}
	if !almostEqual(stats.AverageProcessingSpeed, 0.5) {
		t.Errorf("Expected average speed 0.5, got %f", stats.AverageProcessingSpeed)
	}
}

func TestEfficiencyTiers(t *testing.T) {
	tests := []struct {
		efficiency float64
		want       EfficiencyTier
	}{
		{efficiency: 0, want: TierDelayed},
		{efficiency: 0.49, want: TierDelayed},
		{efficiency: 0.5, want: TierNearRealTime},
		{efficiency: 0.99, want: TierNearRealTime},
		{efficiency: 1, want: TierRealTimePlus},
		{efficiency: 12, want: TierRealTimePlus},
	}

	for _, tt := range tests {
		if got := classifyEfficiency(tt.efficiency); got != tt.want {
			t.Errorf("classifyEfficiency(%v) = %s, want %s", tt.efficiency, got, tt.want)
		}
	}
}

func TestAggregateStatsOrdering(t *testing.T) {
	records := []*common.AnalysisRecord{
		newRecord("old", "2024-01-01T00:00:00", 1, 1),
		newRecord("undated-1", "", 1, 1),
		newRecord("new", "2024-03-01T00:00:00", 1, 1),
		newRecord("tie-a", "2024-02-01T00:00:00", 1, 1),
		newRecord("undated-2", "not a date", 1, 1),
		newRecord("tie-b", "2024-02-01T00:00:00", 1, 1),
	}

	stats := AggregateStats(records)

	expected := []string{"new", "tie-a", "tie-b", "old", "undated-1", "undated-2"}
	for i, id := range expected {
		if stats.PerVideoPerformance[i].RecordID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, stats.PerVideoPerformance[i].RecordID)
		}
	}

	if stats.PerVideoPerformance[0].Index != 3 {
		t.Errorf("Expected input index 3 for newest record, got %d", stats.PerVideoPerformance[0].Index)
	}
}

func TestAggregateStatsMalformed(t *testing.T) {
	records := []*common.AnalysisRecord{
		newRecord("ok", "", 4, 8),
		{ID: "missing-video", TotalAnalysisTime: common.Float(100), BrandAnalysis: common.NewBrandAnalysis()},
		nil,
	}

	stats := AggregateStats(records)

	if stats.RecordCount != 3 {
		t.Errorf("Expected 3 records, got %d", stats.RecordCount)
	}
	if stats.TotalAnalysisSeconds != 4 {
		t.Errorf("Malformed records must not contribute, got total %f", stats.TotalAnalysisSeconds)
	}
	if !almostEqual(stats.AverageAnalysisSeconds, 4.0/3.0) {
		t.Errorf("Expected malformed records in the denominator, got %f", stats.AverageAnalysisSeconds)
	}
	if !almostEqual(stats.AverageFPS, 10) {
		t.Errorf("Expected average fps 10, got %f", stats.AverageFPS)
	}
	if len(stats.PerVideoPerformance) != 3 {
		t.Errorf("Expected every record listed, got %d", len(stats.PerVideoPerformance))
	}
}
