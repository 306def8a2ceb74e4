package analyzer

import (
	"math"

	"github.com/yildizm/BrandSum/internal/common"
)

// Consistency thresholds on the population standard deviation of a brand's samples
const (
	highConsistencyStdDev   = 10.0
	mediumConsistencyStdDev = 20.0
)

// Confidence tier thresholds, in percent
const (
	highConfidence   = 80.0
	mediumConfidence = 60.0
)

// AggregateBrands builds one profile per brand, in first-seen order across the records.
// Each (record, brand) pair adds at most one confidence sample: its average_confidence
// scaled to percent. Malformed records are skipped.
func AggregateBrands(records []*common.AnalysisRecord) BrandAggregate {
	agg := BrandAggregate{Profiles: []BrandProfile{}}
	index := make(map[string]int)

	for i, record := range records {
		if record.Malformed() {
			continue
		}

		for _, entry := range record.Brands().Entries() {
			pos, ok := index[entry.Name]
			if !ok {
				pos = len(agg.Profiles)
				index[entry.Name] = pos
				agg.Profiles = append(agg.Profiles, newBrandProfile(entry.Name))
			}
			accumulate(&agg.Profiles[pos], i, record, entry.Detection)
		}
	}

	for i := range agg.Profiles {
		p := &agg.Profiles[i]
		finalizeProfile(p)

		agg.TotalAppearances += p.TotalAppearances
		agg.TotalExposureSeconds += p.TotalExposureSeconds
	}
	agg.DistinctBrands = len(agg.Profiles)

	return agg
}

func newBrandProfile(name string) BrandProfile {
	return BrandProfile{
		Name:              name,
		ConfidenceSamples: []float64{},
		Consistency:       ConsistencyUnknown,
		Appearances:       []Appearance{},
		Videos:            []VideoAppearance{},
	}
}

func accumulate(p *BrandProfile, recordIndex int, record *common.AnalysisRecord, d common.BrandDetection) {
	p.TotalAppearances += d.AppearanceCount()
	p.TotalExposureSeconds += d.ExposureSeconds()
	p.VideoCount++

	video := VideoAppearance{
		RecordIndex:     recordIndex,
		RecordID:        record.ID,
		RecordTimestamp: record.Timestamp,
		VideoDuration:   record.VideoSeconds(),
		Appearances:     d.AppearanceCount(),
	}
	if avg, ok := d.AverageConfidenceValue(); ok {
		p.ConfidenceSamples = append(p.ConfidenceSamples, avg*100)
		video.AverageConfidence = avg * 100
	}
	p.Videos = append(p.Videos, video)

	for j, ts := range d.Timestamps {
		p.Appearances = append(p.Appearances, Appearance{
			RecordIndex: recordIndex,
			RecordID:    record.ID,
			Timestamp:   ts,
			Confidence:  d.ListingScoreAt(j) * 100,
		})
	}
}

func finalizeProfile(p *BrandProfile) {
	samples := p.ConfidenceSamples
	if len(samples) == 0 {
		p.Consistency = ConsistencyUnknown
		return
	}

	p.MinConfidence = samples[0]
	p.MaxConfidence = samples[0]
	var sum float64
	for _, s := range samples {
		sum += s
		p.MinConfidence = math.Min(p.MinConfidence, s)
		p.MaxConfidence = math.Max(p.MaxConfidence, s)
		countTier(&p.Tiers, s)
	}
	p.AverageConfidence = sum / float64(len(samples))
	p.StdDev = populationStdDev(samples, p.AverageConfidence)
	p.Consistency = classifyConsistency(p.StdDev)
}

// populationStdDev divides by N, not N-1
func populationStdDev(samples []float64, mean float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var squares float64
	for _, s := range samples {
		d := s - mean
		squares += d * d
	}
	return math.Sqrt(squares / float64(len(samples)))
}

func classifyConsistency(stdDev float64) ConsistencyTier {
	switch {
	case stdDev < highConsistencyStdDev:
		return ConsistencyHigh
	case stdDev < mediumConsistencyStdDev:
		return ConsistencyMedium
	default:
		return ConsistencyLow
	}
}

func countTier(t *TierCounts, percent float64) {
	switch {
	case percent >= highConfidence:
		t.High++
	case percent >= mediumConfidence:
		t.Medium++
	default:
		t.Low++
	}
}
