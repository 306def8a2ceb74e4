package common

// Field defaults used when an optional value is absent. A value that is present
// is always used as-is, including an explicit 0; only negative counts and
// durations are clamped.
const (
	// DefaultTimelineConfidence is the intensity ratio assumed for a timeline
	// detection that has neither its own score nor a brand average.
	DefaultTimelineConfidence = 0.8

	// DefaultListingConfidence is used for a missing per-detection score in
	// appearance listings.
	DefaultListingConfidence = 0.0
)

// AnalysisSeconds returns total_analysis_time, or 0
func (r *AnalysisRecord) AnalysisSeconds() float64 {
	if r == nil {
		return 0
	}
	return nonNegative(r.TotalAnalysisTime)
}

// VideoSeconds returns video_info.duration, or 0
func (r *AnalysisRecord) VideoSeconds() float64 {
	if r == nil || r.VideoInfo == nil {
		return 0
	}
	return nonNegative(r.VideoInfo.Duration)
}

// FPS returns video_info.fps, or 0
func (r *AnalysisRecord) FPS() float64 {
	if r == nil || r.VideoInfo == nil {
		return 0
	}
	return nonNegative(r.VideoInfo.FPS)
}

// AppearanceCount returns appearances, or 0
func (d BrandDetection) AppearanceCount() int {
	if d.Appearances == nil || *d.Appearances < 0 {
		return 0
	}
	return *d.Appearances
}

// ExposureSeconds returns total_seconds, or 0
func (d BrandDetection) ExposureSeconds() float64 {
	return nonNegative(d.TotalSeconds)
}

// AverageConfidenceValue returns average_confidence and whether it was present
func (d BrandDetection) AverageConfidenceValue() (float64, bool) {
	if d.AverageConfidence == nil {
		return 0, false
	}
	return *d.AverageConfidence, true
}

// ScoreAt returns confidence_scores[i] and whether it was present. Indices past
// the end of the slice and null entries both count as absent.
func (d BrandDetection) ScoreAt(i int) (float64, bool) {
	if i < 0 || i >= len(d.ConfidenceScores) || d.ConfidenceScores[i] == nil {
		return 0, false
	}
	return *d.ConfidenceScores[i], true
}

// TimelineScoreAt resolves the score of the i-th timestamp for timeline charts:
// its own score, else the brand average, else DefaultTimelineConfidence.
func (d BrandDetection) TimelineScoreAt(i int) float64 {
	return d.ScoreOrAverage(i, DefaultTimelineConfidence)
}

// ScoreOrAverage resolves the i-th score, falling back to the brand average and then to fallback
func (d BrandDetection) ScoreOrAverage(i int, fallback float64) float64 {
	if score, ok := d.ScoreAt(i); ok {
		return score
	}
	if avg, ok := d.AverageConfidenceValue(); ok {
		return avg
	}
	return fallback
}

// ListingScoreAt resolves the score of the i-th timestamp for appearance listings:
// its own score, else DefaultListingConfidence.
func (d BrandDetection) ListingScoreAt(i int) float64 {
	if score, ok := d.ScoreAt(i); ok {
		return score
	}
	return DefaultListingConfidence
}

func nonNegative(v *float64) float64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
