package analyzer

import (
	"testing"

	"github.com/yildizm/BrandSum/internal/common"
)

func TestAggregateBrandsScenario(t *testing.T) {
	records := []*common.AnalysisRecord{
		newRecord("r1", "", 1, 10, brand("nike", 2, 10, 0.9)),
		newRecord("r2", "", 1, 10, brand("nike", 3, 5, 0.5)),
	}

	agg := AggregateBrands(records)

	nike, ok := agg.Profile("nike")
	if !ok {
		t.Fatal("Expected a nike profile")
	}
	if len(nike.ConfidenceSamples) != 2 || !almostEqual(nike.ConfidenceSamples[0], 90) || !almostEqual(nike.ConfidenceSamples[1], 50) {
		t.Errorf("Expected samples [90 50], got %v", nike.ConfidenceSamples)
	}
	if !almostEqual(nike.AverageConfidence, 70) {
		t.Errorf("Expected mean 70, got %f", nike.AverageConfidence)
	}
	if !almostEqual(nike.StdDev, 20) {
		t.Errorf("Expected population stddev 20, got %f", nike.StdDev)
	}
	if nike.Consistency != ConsistencyLow {
		t.Errorf("Expected consistency low, got %s", nike.Consistency)
	}
	if nike.MinConfidence != 50 || nike.MaxConfidence != 90 {
		t.Errorf("Expected min 50 max 90, got %f %f", nike.MinConfidence, nike.MaxConfidence)
	}
	if nike.TotalAppearances != 5 || nike.TotalExposureSeconds != 15 || nike.VideoCount != 2 {
		t.Errorf("Unexpected totals: %+v", nike)
	}
	if nike.Tiers.High != 1 || nike.Tiers.Low != 1 {
		t.Errorf("Unexpected tier counts: %+v", nike.Tiers)
	}
}

func TestConsistencyTiers(t *testing.T) {
	tests := []struct {
		stdDev float64
		want   ConsistencyTier
	}{
		{stdDev: 0, want: ConsistencyHigh},
		{stdDev: 9.999, want: ConsistencyHigh},
		{stdDev: 10, want: ConsistencyMedium},
		{stdDev: 19.99, want: ConsistencyMedium},
		{stdDev: 20, want: ConsistencyLow},
		{stdDev: 45, want: ConsistencyLow},
	}

	for _, tt := range tests {
		if got := classifyConsistency(tt.stdDev); got != tt.want {
			t.Errorf("classifyConsistency(%v) = %s, want %s", tt.stdDev, got, tt.want)
		}
	}
}

func TestAggregateBrandsMissingAverage(t *testing.T) {
	records := []*common.AnalysisRecord{
		newRecord("r1", "", 1, 10, common.BrandEntry{
			Name:      "puma",
			Detection: common.BrandDetection{Appearances: common.Int(3)},
		}),
		newRecord("r2", "", 1, 10, brand("zero", 1, 1, 0)),
	}

	agg := AggregateBrands(records)

	puma, _ := agg.Profile("puma")
	if puma.Consistency != ConsistencyUnknown {
		t.Errorf("Expected unknown consistency without samples, got %s", puma.Consistency)
	}
	if puma.MinConfidence != 0 || puma.MaxConfidence != 0 || puma.AverageConfidence != 0 {
		t.Error("Expected zero statistics on an empty sample set")
	}
	if puma.TotalExposureSeconds != 0 {
		t.Errorf("Missing total_seconds should default to 0, got %f", puma.TotalExposureSeconds)
	}

	zero, _ := agg.Profile("zero")
	if len(zero.ConfidenceSamples) != 1 || zero.ConfidenceSamples[0] != 0 {
		t.Errorf("A defined 0 average is a valid sample, got %v", zero.ConfidenceSamples)
	}
	if zero.Consistency != ConsistencyHigh {
		t.Errorf("Single sample should be high consistency, got %s", zero.Consistency)
	}
}

func TestAggregateBrandsOrderAndTotals(t *testing.T) {
	records := []*common.AnalysisRecord{
		newRecord("r1", "", 1, 10, brand("coke", 1, 2, 0.8), brand("pepsi", 2, 3, 0.7)),
		{ID: "broken", BrandAnalysis: common.NewBrandAnalysis(brand("ghost", 100, 100, 1))},
		newRecord("r3", "", 1, 10, brand("fanta", 3, 4, 0.6), brand("coke", 4, 5, 0.9)),
	}

	agg := AggregateBrands(records)

	expected := []string{"coke", "pepsi", "fanta"}
	if len(agg.Profiles) != len(expected) {
		t.Fatalf("Expected %d profiles, got %d", len(expected), len(agg.Profiles))
	}
	for i, name := range expected {
		if agg.Profiles[i].Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, agg.Profiles[i].Name)
		}
	}
	if agg.DistinctBrands != 3 {
		t.Errorf("Expected 3 distinct brands, got %d", agg.DistinctBrands)
	}
	if agg.TotalAppearances != 10 {
		t.Errorf("Expected 10 appearances, got %d", agg.TotalAppearances)
	}
	if agg.TotalExposureSeconds != 14 {
		t.Errorf("Expected 14 exposure seconds, got %f", agg.TotalExposureSeconds)
	}

	coke, _ := agg.Profile("coke")
	if len(coke.Videos) != 2 || coke.Videos[1].RecordIndex != 2 || coke.Videos[1].RecordID != "r3" {
		t.Errorf("Unexpected video appearances: %+v", coke.Videos)
	}
}

func TestAggregateBrandsAppearanceListing(t *testing.T) {
	records := []*common.AnalysisRecord{
		newRecord("r1", "", 1, 10, common.BrandEntry{
			Name: "nike",
			Detection: common.BrandDetection{
				AverageConfidence: common.Float(0.7),
				Timestamps:        []float64{1, 2, 3},
				ConfidenceScores:  []*float64{common.Float(0.9), nil},
			},
		}),
	}

	nike, _ := AggregateBrands(records).Profile("nike")
	if len(nike.Appearances) != 3 {
		t.Fatalf("Expected 3 appearances, got %d", len(nike.Appearances))
	}

	want := []float64{90, 0, 0}
	for i, a := range nike.Appearances {
		if !almostEqual(a.Confidence, want[i]) {
			t.Errorf("Appearance %d: expected confidence %f, got %f", i, want[i], a.Confidence)
		}
		if a.RecordIndex != 0 || a.RecordID != "r1" {
			t.Errorf("Appearance %d has wrong record tag: %+v", i, a)
		}
	}
}
