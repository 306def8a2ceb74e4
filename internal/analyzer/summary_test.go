package analyzer

import (
	"testing"

	"github.com/yildizm/BrandSum/internal/common"
)

func TestSummarize(t *testing.T) {
	records := []*common.AnalysisRecord{
		newRecord("r1", "", 5, 20, brand("nike", 3, 10, 0.9), brand("adidas", 1, 2, 0.5)),
		newRecord("r2", "", 7, 20, brand("nike", 0, 0, 0.1)),
		{ID: "broken", TotalAnalysisTime: common.Float(50)},
	}

	dash := Summarize(records)

	if dash.TotalVideos != 2 {
		t.Errorf("Expected 2 videos, got %d", dash.TotalVideos)
	}
	if dash.TotalBrands != 2 {
		t.Errorf("Expected 2 brands, got %d", dash.TotalBrands)
	}
	if dash.TotalAnalysisSeconds != 12 {
		t.Errorf("Expected 12 analysis seconds, got %f", dash.TotalAnalysisSeconds)
	}
	// (0.9*3 + 0.5*1 + 0.1*0) / 4
	if !almostEqual(dash.AverageConfidence, 80) {
		t.Errorf("Expected weighted confidence 80, got %f", dash.AverageConfidence)
	}

	if Summarize(nil) != (Dashboard{}) {
		t.Error("Expected zero dashboard for empty input")
	}
}

func TestSummarizeRecord(t *testing.T) {
	record := newRecord("r1", "", 1, 10,
		common.BrandEntry{Name: "nike", Detection: common.BrandDetection{
			Appearances:      common.Int(2),
			TotalSeconds:     common.Float(3),
			ConfidenceScores: []*float64{common.Float(0.6), nil},
		}},
		common.BrandEntry{Name: "adidas", Detection: common.BrandDetection{
			Appearances:      common.Int(4),
			TotalSeconds:     common.Float(1.5),
			ConfidenceScores: common.Scores(0.9),
		}},
		common.BrandEntry{Name: "puma", Detection: common.BrandDetection{
			Appearances: common.Int(4),
		}},
	)

	s := SummarizeRecord(record)

	if s.BrandCount != 3 || s.TotalAppearances != 10 {
		t.Errorf("Unexpected counts: %+v", s)
	}
	if s.TotalDetectionSeconds != 4.5 {
		t.Errorf("Expected 4.5 detection seconds, got %f", s.TotalDetectionSeconds)
	}
	if s.MostDetectedBrand != "adidas" {
		t.Errorf("Expected first brand with max appearances, got %s", s.MostDetectedBrand)
	}
	if !almostEqual(s.AverageConfidence, 0.75) {
		t.Errorf("Expected mean of defined scores 0.75, got %f", s.AverageConfidence)
	}

	if SummarizeRecord(&common.AnalysisRecord{ID: "x"}).BrandCount != 0 {
		t.Error("Expected empty summary for malformed record")
	}
}
