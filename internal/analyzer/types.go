package analyzer

import (
	"time"
)

// Report is the result of aggregating one snapshot of analysis records
type Report struct {
	GeneratedAt    time.Time              `json:"generated_at"`
	RecordCount    int                    `json:"record_count"`
	MalformedCount int                    `json:"malformed_count"`
	Stats          OverallStats           `json:"stats"`
	Brands         BrandAggregate         `json:"brands"`
	Confidence     ConfidenceReport       `json:"confidence"`
	Dashboard      Dashboard              `json:"dashboard"`
	Rankings       []Ranked[BrandProfile] `json:"rankings"`
	RankedBy       string                 `json:"ranked_by"`
}

// EfficiencyTier classifies video duration over analysis duration
type EfficiencyTier string

const (
	TierRealTimePlus EfficiencyTier = "real-time-plus"
	TierNearRealTime EfficiencyTier = "near-real-time"
	TierDelayed      EfficiencyTier = "delayed"
)

// OverallStats holds corpus-wide timing and throughput figures
type OverallStats struct {
	RecordCount            int                `json:"record_count"`
	TotalAnalysisSeconds   float64            `json:"total_analysis_seconds"`
	TotalVideoSeconds      float64            `json:"total_video_seconds"`
	AverageAnalysisSeconds float64            `json:"average_analysis_seconds"`
	AverageProcessingSpeed float64            `json:"average_processing_speed"`
	AverageFPS             float64            `json:"average_fps"`
	TotalFramesProcessed   int                `json:"total_frames_processed"`
	PerVideoPerformance    []VideoPerformance `json:"per_video_performance"`
}

// VideoPerformance is the timing breakdown of a single record
type VideoPerformance struct {
	Index           int            `json:"index"` // 1-based position in the input
	RecordID        string         `json:"record_id,omitempty"`
	Title           string         `json:"title,omitempty"`
	Timestamp       string         `json:"timestamp,omitempty"`
	AnalysisSeconds float64        `json:"analysis_seconds"`
	VideoSeconds    float64        `json:"video_seconds"`
	FPS             float64        `json:"fps"`
	Frames          int            `json:"frames"`
	BrandCount      int            `json:"brand_count"`
	ProcessingSpeed float64        `json:"processing_speed"`
	Efficiency      float64        `json:"efficiency"`
	EfficiencyTier  EfficiencyTier `json:"efficiency_tier"`
	Malformed       bool           `json:"malformed,omitempty"`
}

// ConsistencyTier labels how much a brand's confidence varies across videos
type ConsistencyTier string

const (
	ConsistencyHigh    ConsistencyTier = "high"
	ConsistencyMedium  ConsistencyTier = "medium"
	ConsistencyLow     ConsistencyTier = "low"
	ConsistencyUnknown ConsistencyTier = "unknown"
)

// TierCounts counts confidence percentages by high/medium/low tier
type TierCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// BrandProfile aggregates one brand across every record it appears in
type BrandProfile struct {
	Name                 string            `json:"name"`
	TotalAppearances     int               `json:"total_appearances"`
	TotalExposureSeconds float64           `json:"total_exposure_seconds"`
	VideoCount           int               `json:"video_count"`
	ConfidenceSamples    []float64         `json:"confidence_samples"`
	AverageConfidence    float64           `json:"average_confidence"`
	MinConfidence        float64           `json:"min_confidence"`
	MaxConfidence        float64           `json:"max_confidence"`
	StdDev               float64           `json:"std_dev"`
	Consistency          ConsistencyTier   `json:"consistency"`
	Tiers                TierCounts        `json:"tiers"`
	Appearances          []Appearance      `json:"appearances"`
	Videos               []VideoAppearance `json:"videos"`
}

// Appearance is one timestamped detection of a brand, tagged with its record
type Appearance struct {
	RecordIndex int     `json:"record_index"`
	RecordID    string  `json:"record_id,omitempty"`
	Timestamp   float64 `json:"timestamp"`
	Confidence  float64 `json:"confidence"`
}

// VideoAppearance summarises a brand within one record
type VideoAppearance struct {
	RecordIndex       int     `json:"record_index"`
	RecordID          string  `json:"record_id,omitempty"`
	RecordTimestamp   string  `json:"record_timestamp,omitempty"`
	VideoDuration     float64 `json:"video_duration"`
	AverageConfidence float64 `json:"average_confidence"`
	Appearances       int     `json:"appearances"`
}

// BrandAggregate is the ordered set of brand profiles plus global totals
type BrandAggregate struct {
	Profiles             []BrandProfile `json:"profiles"`
	DistinctBrands       int            `json:"distinct_brands"`
	TotalAppearances     int            `json:"total_appearances"`
	TotalExposureSeconds float64        `json:"total_exposure_seconds"`
}

// Profile returns the profile for name
func (a BrandAggregate) Profile(name string) (BrandProfile, bool) {
	for _, p := range a.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return BrandProfile{}, false
}

// ConfidenceSource selects which samples feed the confidence classifier
type ConfidenceSource string

const (
	// SourceBoth mixes brand averages with per-detection scores, without deduplication
	SourceBoth       ConfidenceSource = "both"
	SourceAverage    ConfidenceSource = "average"
	SourceDetections ConfidenceSource = "detections"
)

// ConfidenceReport classifies a flat list of confidence percentages
type ConfidenceReport struct {
	Overall   OverallConfidence `json:"overall"`
	Histogram []HistogramBucket `json:"histogram"`
	Quality   QualityMetrics    `json:"quality"`
}

// OverallConfidence splits samples into high (>=80), medium [60,80) and low (<60)
type OverallConfidence struct {
	High    int     `json:"high"`
	Medium  int     `json:"medium"`
	Low     int     `json:"low"`
	Total   int     `json:"total"`
	Average float64 `json:"average"`
}

// HistogramBucket is one 10-point confidence range
type HistogramBucket struct {
	Label      string  `json:"label"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// QualityMetrics splits samples into four quality tiers
type QualityMetrics struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	Poor      int `json:"poor"`
}

// TimelineMode selects how detections are assigned to buckets
type TimelineMode string

const (
	// TimelineOverlap selects every detection within half a bucket of the centre,
	// so a detection on a boundary counts in both neighbours
	TimelineOverlap TimelineMode = "overlap"
	// TimelineNearest assigns each detection to exactly one bucket
	TimelineNearest TimelineMode = "nearest"
)

// Timeline is a per-brand intensity series for one record
type Timeline struct {
	Brands        []string         `json:"brands"`
	BucketSeconds float64          `json:"bucket_seconds"`
	Buckets       []TimelineBucket `json:"buckets"`
}

// TimelineBucket holds one intensity value (0-100) per brand, in Timeline.Brands order
type TimelineBucket struct {
	Index        int     `json:"index"`
	StartSeconds float64 `json:"start_seconds"`
	Values       []int   `json:"values"`
}

// TimelineStats provides statistical summary of timeline data
type TimelineStats struct {
	TotalBuckets  int                  `json:"total_buckets"`
	ActiveBuckets int                  `json:"active_buckets"`
	BucketSeconds float64              `json:"bucket_seconds"`
	Brands        []BrandTimelineStats `json:"brands"`
}

// BrandTimelineStats summarises one brand's series
type BrandTimelineStats struct {
	Brand              string  `json:"brand"`
	ActiveBuckets      int     `json:"active_buckets"`
	PeakValue          int     `json:"peak_value"`
	PeakStartSeconds   float64 `json:"peak_start_seconds"`
	AverageActiveValue float64 `json:"average_active_value"`
}

// TimelineTrend represents a detected trend in a brand's series
type TimelineTrend struct {
	Brand        string  `json:"brand"`
	Type         string  `json:"type"`     // "increasing", "decreasing", "stable"
	Strength     float64 `json:"strength"` // 0-1, absolute correlation
	Slope        float64 `json:"slope"`    // intensity points per bucket
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
}

// TimelineAnalysis bundles a record's timeline with its statistics
type TimelineAnalysis struct {
	RecordID string          `json:"record_id,omitempty"`
	Title    string          `json:"title,omitempty"`
	Timeline *Timeline       `json:"timeline"`
	Stats    TimelineStats   `json:"stats"`
	Trends   []TimelineTrend `json:"trends"`
	Summary  RecordSummary   `json:"summary"`
}

// Dashboard holds the headline figures of a snapshot
type Dashboard struct {
	TotalVideos          int     `json:"total_videos"`
	TotalBrands          int     `json:"total_brands"`
	TotalAnalysisSeconds float64 `json:"total_analysis_seconds"`
	AverageConfidence    float64 `json:"average_confidence"`
}

// RecordSummary holds the headline figures of one record
type RecordSummary struct {
	RecordID              string  `json:"record_id,omitempty"`
	BrandCount            int     `json:"brand_count"`
	TotalAppearances      int     `json:"total_appearances"`
	TotalDetectionSeconds float64 `json:"total_detection_seconds"`
	MostDetectedBrand     string  `json:"most_detected_brand,omitempty"`
	AverageConfidence     float64 `json:"average_confidence"` // ratio, mean of defined scores
}
