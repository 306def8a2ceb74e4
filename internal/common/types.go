package common

import (
	"strings"
	"time"
)

// AnalysisRecord is one completed video analysis produced by the detection service.
// Records are treated as immutable snapshots: nothing in this module writes to them
// after decoding.
type AnalysisRecord struct {
	ID                string         `json:"id,omitempty"`
	Username          string         `json:"username,omitempty"`
	Type              string         `json:"type,omitempty"`
	Timestamp         string         `json:"timestamp,omitempty"`
	TotalAnalysisTime *float64       `json:"total_analysis_time,omitempty"`
	VideoInfo         *VideoInfo     `json:"video_info,omitempty"`
	BrandAnalysis     *BrandAnalysis `json:"brand_analysis,omitempty"`
	AnalysisSettings  map[string]any `json:"analysis_settings,omitempty"`
	Statistics        map[string]any `json:"statistics,omitempty"`

	malformed bool
}

// VideoInfo describes the analysed video
type VideoInfo struct {
	Duration   *float64 `json:"duration,omitempty"`
	FPS        *float64 `json:"fps,omitempty"`
	FrameCount *int     `json:"frame_count,omitempty"`
	Width      *int     `json:"width,omitempty"`
	Height     *int     `json:"height,omitempty"`
	FileSize   *int64   `json:"file_size,omitempty"`
	Format     string   `json:"format,omitempty"`
	Title      string   `json:"title,omitempty"`
	URL        string   `json:"url,omitempty"`
}

// BrandDetection is a single brand's aggregated detection data within one record
type BrandDetection struct {
	Appearances       *int        `json:"appearances,omitempty"`
	TotalSeconds      *float64    `json:"total_seconds,omitempty"`
	AverageConfidence *float64    `json:"average_confidence,omitempty"`
	MaxConfidence     *float64    `json:"max_confidence,omitempty"`
	Timestamps        []float64   `json:"timestamps,omitempty"`
	ConfidenceScores  []*float64  `json:"confidence_scores,omitempty"`
	Detections        []Detection `json:"detections,omitempty"`
}

// Detection is one raw detector hit. Only Confidence is consumed by the engine.
type Detection struct {
	Confidence *float64  `json:"confidence,omitempty"`
	BBox       []float64 `json:"bbox,omitempty"`
}

// Malformed reports whether the record lacks video_info or brand_analysis,
// or could not be decoded as an object at all.
func (r *AnalysisRecord) Malformed() bool {
	return r == nil || r.malformed || r.VideoInfo == nil || r.BrandAnalysis == nil
}

// Brands returns the record's brand mapping, or an empty one for malformed records
func (r *AnalysisRecord) Brands() *BrandAnalysis {
	if r == nil || r.BrandAnalysis == nil {
		return &BrandAnalysis{}
	}
	return r.BrandAnalysis
}

// Title returns the video title when known
func (r *AnalysisRecord) Title() string {
	if r == nil || r.VideoInfo == nil {
		return ""
	}
	return r.VideoInfo.Title
}

// timestampLayouts are tried in order. The detection service writes local
// ISO-8601 timestamps without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CreatedAt parses the record timestamp. Unparseable or missing values yield the zero time.
func (r *AnalysisRecord) CreatedAt() time.Time {
	if r == nil {
		return time.Time{}
	}
	value := strings.TrimSpace(r.Timestamp)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Float returns a pointer to v, for building records in code
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}

// Scores builds a confidence_scores slice with every entry defined
func Scores(values ...float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		out[i] = Float(values[i])
	}
	return out
}
