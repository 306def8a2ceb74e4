package analyzer

import (
	"github.com/yildizm/BrandSum/internal/common"
)

// Summarize computes the headline dashboard figures. The average confidence is
// weighted by appearances and expressed in percent.
func Summarize(records []*common.AnalysisRecord) Dashboard {
	var dash Dashboard
	seen := make(map[string]struct{})

	var weighted float64
	var appearances int
	for _, record := range records {
		if record.Malformed() {
			continue
		}
		dash.TotalVideos++
		dash.TotalAnalysisSeconds += record.AnalysisSeconds()

		for _, entry := range record.Brands().Entries() {
			seen[entry.Name] = struct{}{}

			count := entry.Detection.AppearanceCount()
			if avg, ok := entry.Detection.AverageConfidenceValue(); ok {
				weighted += avg * float64(count)
			}
			appearances += count
		}
	}

	dash.TotalBrands = len(seen)
	if appearances > 0 {
		dash.AverageConfidence = weighted / float64(appearances) * 100
	}
	return dash
}

// SummarizeRecord computes the headline figures of one record
func SummarizeRecord(record *common.AnalysisRecord) RecordSummary {
	summary := RecordSummary{}
	if record == nil {
		return summary
	}
	summary.RecordID = record.ID
	if record.Malformed() {
		return summary
	}

	brands := record.Brands()
	summary.BrandCount = brands.Len()

	best := -1
	var scoreSum float64
	var scoreCount int
	for _, entry := range brands.Entries() {
		d := entry.Detection
		count := d.AppearanceCount()

		summary.TotalAppearances += count
		summary.TotalDetectionSeconds += d.ExposureSeconds()
		if count > best {
			best = count
			summary.MostDetectedBrand = entry.Name
		}

		for i := range d.ConfidenceScores {
			if score, ok := d.ScoreAt(i); ok {
				scoreSum += score
				scoreCount++
			}
		}
	}

	if scoreCount > 0 {
		summary.AverageConfidence = scoreSum / float64(scoreCount)
	}
	return summary
}
