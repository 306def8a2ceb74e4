package formatter

import (
	"time"

	json "github.com/goccy/go-json"

	"github.com/yildizm/BrandSum/internal/analyzer"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct {
	compact bool
}

// NewJSON creates a new JSON formatter
func NewJSON(compact bool) Formatter {
	return &jsonFormatter{compact: compact}
}

func (f *jsonFormatter) Format(report *analyzer.Report) ([]byte, error) {
	output := &JSONOutput{
		Summary:    createSummary(report),
		Stats:      report.Stats,
		Brands:     report.Brands.Profiles,
		Confidence: report.Confidence,
		Rankings:   createRankingOutputs(report.Rankings),
	}

	if f.compact {
		return json.Marshal(output)
	}
	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the document written by the JSON formatter
type JSONOutput struct {
	Summary    *SummaryOutput            `json:"summary"`
	Stats      analyzer.OverallStats     `json:"stats"`
	Brands     []analyzer.BrandProfile   `json:"brands"`
	Confidence analyzer.ConfidenceReport `json:"confidence"`
	Rankings   []*RankingOutput          `json:"rankings"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	GeneratedAt          time.Time `json:"generated_at"`
	TotalRecords         int       `json:"total_records"`
	MalformedRecords     int       `json:"malformed_records"`
	TotalVideos          int       `json:"total_videos"`
	TotalBrands          int       `json:"total_brands"`
	TotalAppearances     int       `json:"total_appearances"`
	TotalExposureSeconds float64   `json:"total_exposure_seconds"`
	TotalAnalysisSeconds float64   `json:"total_analysis_seconds"`
	AverageConfidence    float64   `json:"average_confidence"`
	RankedBy             string    `json:"ranked_by"`
}

// RankingOutput is one ranked brand without its detection listing
type RankingOutput struct {
	Rank              int     `json:"rank"`
	Brand             string  `json:"brand"`
	Score             float64 `json:"score"`
	Appearances       int     `json:"appearances"`
	ExposureSeconds   float64 `json:"exposure_seconds"`
	Videos            int     `json:"videos"`
	AverageConfidence float64 `json:"average_confidence"`
	Consistency       string  `json:"consistency"`
}

func createSummary(report *analyzer.Report) *SummaryOutput {
	return &SummaryOutput{
		GeneratedAt:          report.GeneratedAt,
		TotalRecords:         report.RecordCount,
		MalformedRecords:     report.MalformedCount,
		TotalVideos:          report.Dashboard.TotalVideos,
		TotalBrands:          report.Dashboard.TotalBrands,
		TotalAppearances:     report.Brands.TotalAppearances,
		TotalExposureSeconds: report.Brands.TotalExposureSeconds,
		TotalAnalysisSeconds: report.Dashboard.TotalAnalysisSeconds,
		AverageConfidence:    report.Dashboard.AverageConfidence,
		RankedBy:             report.RankedBy,
	}
}

func createRankingOutputs(rankings []analyzer.Ranked[analyzer.BrandProfile]) []*RankingOutput {
	outputs := make([]*RankingOutput, 0, len(rankings))
	for _, r := range rankings {
		outputs = append(outputs, &RankingOutput{
			Rank:              r.Rank,
			Brand:             r.Item.Name,
			Score:             r.Score,
			Appearances:       r.Item.TotalAppearances,
			ExposureSeconds:   r.Item.TotalExposureSeconds,
			Videos:            r.Item.VideoCount,
			AverageConfidence: r.Item.AverageConfidence,
			Consistency:       string(r.Item.Consistency),
		})
	}
	return outputs
}
