package analyzer

import (
	"fmt"

	"github.com/yildizm/BrandSum/internal/common"
)

const (
	histogramBuckets     = 10
	histogramBucketWidth = 10.0

	excellentQuality = 90.0
)

// ParseConfidenceSource validates a source mode name
func ParseConfidenceSource(name string) (ConfidenceSource, error) {
	switch ConfidenceSource(name) {
	case SourceBoth, SourceAverage, SourceDetections:
		return ConfidenceSource(name), nil
	case "":
		return SourceBoth, nil
	default:
		return "", fmt.Errorf("unknown confidence source %q (valid: both, average, detections)", name)
	}
}

// CollectConfidenceSamples flattens the confidence percentages of a snapshot.
// In SourceBoth mode a record carrying both a brand average and per-detection
// scores contributes all of them.
func CollectConfidenceSamples(records []*common.AnalysisRecord, source ConfidenceSource) []float64 {
	samples := []float64{}
	useAverage := source != SourceDetections
	useDetections := source != SourceAverage

	for _, record := range records {
		if record.Malformed() {
			continue
		}
		for _, entry := range record.Brands().Entries() {
			d := entry.Detection
			if useAverage {
				if avg, ok := d.AverageConfidenceValue(); ok {
					samples = append(samples, avg*100)
				}
			}
			if useDetections {
				for _, det := range d.Detections {
					if det.Confidence != nil {
						samples = append(samples, *det.Confidence*100)
					}
				}
			}
		}
	}
	return samples
}

// ClassifyConfidence builds tier counts, a 10-bucket histogram and quality metrics
// from one list of percentages, so every breakdown sums to the same total.
func ClassifyConfidence(samples []float64) ConfidenceReport {
	report := ConfidenceReport{
		Histogram: newHistogram(),
	}

	var sum float64
	for _, s := range samples {
		sum += s

		var tiers TierCounts
		countTier(&tiers, s)
		report.Overall.High += tiers.High
		report.Overall.Medium += tiers.Medium
		report.Overall.Low += tiers.Low

		report.Histogram[histogramIndex(s)].Count++
		countQuality(&report.Quality, s)
	}

	total := len(samples)
	report.Overall.Total = total
	if total > 0 {
		report.Overall.Average = sum / float64(total)
		for i := range report.Histogram {
			report.Histogram[i].Percentage = float64(report.Histogram[i].Count) / float64(total) * 100
		}
	}

	return report
}

func newHistogram() []HistogramBucket {
	buckets := make([]HistogramBucket, histogramBuckets)
	for i := range buckets {
		lo := float64(i) * histogramBucketWidth
		hi := lo + histogramBucketWidth
		buckets[i] = HistogramBucket{
			Label: fmt.Sprintf("%d-%d", int(lo), int(hi)),
			Min:   lo,
			Max:   hi,
		}
	}
	return buckets
}

// histogramIndex clamps out-of-range values: below 0 goes to the first bucket,
// 100 and above to the last.
func histogramIndex(percent float64) int {
	if !(percent >= 0) {
		return 0
	}
	idx := int(percent / histogramBucketWidth)
	if idx >= histogramBuckets {
		return histogramBuckets - 1
	}
	return idx
}

func countQuality(q *QualityMetrics, percent float64) {
	switch {
	case percent >= excellentQuality:
		q.Excellent++
	case percent >= highConfidence:
		q.Good++
	case percent >= mediumConfidence:
		q.Fair++
	default:
		q.Poor++
	}
}
