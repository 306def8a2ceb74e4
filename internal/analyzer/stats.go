package analyzer

import (
	"math"
	"sort"

	"github.com/yildizm/BrandSum/internal/common"
)

// Efficiency tier thresholds, in video seconds per analysis second
const (
	realTimeEfficiency     = 1.0
	nearRealTimeEfficiency = 0.5
)

// AggregateStats computes corpus-wide timing statistics. Malformed records count
// toward the averages' denominators but contribute nothing to the sums.
func AggregateStats(records []*common.AnalysisRecord) OverallStats {
	stats := OverallStats{
		RecordCount:         len(records),
		PerVideoPerformance: make([]VideoPerformance, 0, len(records)),
	}
	if len(records) == 0 {
		return stats
	}

	var fpsSum float64
	for i, record := range records {
		perf := videoPerformance(i, record)

		stats.TotalAnalysisSeconds += perf.AnalysisSeconds
		stats.TotalVideoSeconds += perf.VideoSeconds
		stats.TotalFramesProcessed += perf.Frames
		fpsSum += perf.FPS

		stats.PerVideoPerformance = append(stats.PerVideoPerformance, perf)
	}

	n := float64(len(records))
	stats.AverageAnalysisSeconds = stats.TotalAnalysisSeconds / n
	stats.AverageFPS = fpsSum / n
	stats.AverageProcessingSpeed = safeDiv(stats.TotalAnalysisSeconds, stats.TotalVideoSeconds)

	// Most recent first; unparseable timestamps sort last, in input order
	created := make([]int64, len(records))
	for i, record := range records {
		created[i] = math.MinInt64
		if t := record.CreatedAt(); !t.IsZero() {
			created[i] = t.UnixNano()
		}
	}
	sort.SliceStable(stats.PerVideoPerformance, func(i, j int) bool {
		a := stats.PerVideoPerformance[i].Index - 1
		b := stats.PerVideoPerformance[j].Index - 1
		return created[a] > created[b]
	})

	return stats
}

func videoPerformance(i int, record *common.AnalysisRecord) VideoPerformance {
	perf := VideoPerformance{
		Index:     i + 1,
		Malformed: record.Malformed(),
	}
	if record != nil {
		perf.RecordID = record.ID
		perf.Timestamp = record.Timestamp
		perf.Title = record.Title()
	}

	if !perf.Malformed {
		perf.AnalysisSeconds = record.AnalysisSeconds()
		perf.VideoSeconds = record.VideoSeconds()
		perf.FPS = record.FPS()
		perf.Frames = int(math.Round(perf.VideoSeconds * perf.FPS))
		perf.BrandCount = record.Brands().Len()
	}

	perf.ProcessingSpeed = safeDiv(perf.AnalysisSeconds, perf.VideoSeconds)
	perf.Efficiency = safeDiv(perf.VideoSeconds, perf.AnalysisSeconds)
	perf.EfficiencyTier = classifyEfficiency(perf.Efficiency)
	return perf
}

func classifyEfficiency(efficiency float64) EfficiencyTier {
	switch {
	case efficiency >= realTimeEfficiency:
		return TierRealTimePlus
	case efficiency >= nearRealTimeEfficiency:
		return TierNearRealTime
	default:
		return TierDelayed
	}
}

// safeDiv returns 0 when the denominator is 0
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
