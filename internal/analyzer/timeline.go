package analyzer

import (
	"fmt"
	"math"

	"github.com/yildizm/BrandSum/internal/common"
)

// DefaultBucketSeconds is the width and step of timeline buckets
const DefaultBucketSeconds = 5.0

// MaxTimelineBuckets bounds a single timeline. Detections past the last
// bucket are dropped.
const MaxTimelineBuckets = 10000

// trendSlopeThreshold is the minimum slope, in intensity points per bucket,
// reported as increasing or decreasing
const trendSlopeThreshold = 1.0

// TimelineOptions controls bucket assignment
type TimelineOptions struct {
	Mode          TimelineMode
	BucketSeconds float64
	// DefaultConfidence is used for a detection with no score and no brand average
	DefaultConfidence float64
}

// DefaultTimelineOptions returns overlap mode with 5 second buckets
func DefaultTimelineOptions() TimelineOptions {
	return TimelineOptions{
		Mode:              TimelineOverlap,
		BucketSeconds:     DefaultBucketSeconds,
		DefaultConfidence: common.DefaultTimelineConfidence,
	}
}

// ParseTimelineMode validates a mode name
func ParseTimelineMode(name string) (TimelineMode, error) {
	switch TimelineMode(name) {
	case TimelineOverlap, TimelineNearest:
		return TimelineMode(name), nil
	case "":
		return TimelineOverlap, nil
	default:
		return "", fmt.Errorf("unknown timeline mode %q (valid: overlap, nearest)", name)
	}
}

// BuildTimeline buckets one record's detections with the default options
func BuildTimeline(brands *common.BrandAnalysis) *Timeline {
	return NewTimelineGenerator(DefaultTimelineOptions()).GenerateTimeline(brands)
}

// TimelineGenerator creates per-brand intensity series from a record's detections
type TimelineGenerator struct {
	opts TimelineOptions
}

// NewTimelineGenerator creates a new timeline generator. Invalid option values
// fall back to the defaults.
func NewTimelineGenerator(opts TimelineOptions) *TimelineGenerator {
	defaults := DefaultTimelineOptions()
	if opts.Mode != TimelineNearest {
		opts.Mode = TimelineOverlap
	}
	if !(opts.BucketSeconds > 0) {
		opts.BucketSeconds = defaults.BucketSeconds
	}
	if opts.DefaultConfidence < 0 || opts.DefaultConfidence > 1 {
		opts.DefaultConfidence = defaults.DefaultConfidence
	}
	return &TimelineGenerator{opts: opts}
}

// GenerateTimeline emits buckets 0..floor(maxTimestamp/width). A brand with no
// detection near a bucket scores 0 there. Negative timestamps are ignored.
func (g *TimelineGenerator) GenerateTimeline(brands *common.BrandAnalysis) *Timeline {
	return g.generate(brands, 0)
}

// GenerateRecordTimeline is GenerateTimeline with detections past the
// record's video duration dropped, when the duration is known.
func (g *TimelineGenerator) GenerateRecordTimeline(record *common.AnalysisRecord) *Timeline {
	return g.generate(record.Brands(), record.VideoSeconds())
}

// horizon is the latest timestamp that still gets a bucket
func (g *TimelineGenerator) horizon(duration float64) float64 {
	limit := float64(MaxTimelineBuckets-1) * g.opts.BucketSeconds
	if duration > 0 && duration < limit {
		return duration
	}
	return limit
}

func (g *TimelineGenerator) generate(brands *common.BrandAnalysis, duration float64) *Timeline {
	width := g.opts.BucketSeconds
	horizon := g.horizon(duration)
	timeline := &Timeline{
		Brands:        brands.Names(),
		BucketSeconds: width,
		Buckets:       []TimelineBucket{},
	}

	maxTimestamp, ok := g.maxTimestamp(brands, horizon)
	if !ok {
		return timeline
	}

	count := min(int(math.Floor(maxTimestamp/width))+1, MaxTimelineBuckets)
	timeline.Buckets = g.createBuckets(count, len(timeline.Brands))

	sums := make([]float64, count)
	hits := make([]int, count)
	for b, entry := range brands.Entries() {
		for i := range sums {
			sums[i] = 0
			hits[i] = 0
		}

		g.distributeDetections(entry.Detection, horizon, sums, hits)

		for i := range timeline.Buckets {
			if hits[i] == 0 {
				continue
			}
			timeline.Buckets[i].Values[b] = intensity(sums[i] / float64(hits[i]))
		}
	}

	return timeline
}

func (g *TimelineGenerator) maxTimestamp(brands *common.BrandAnalysis, horizon float64) (float64, bool) {
	maxTs, found := 0.0, false
	for _, entry := range brands.Entries() {
		for _, ts := range entry.Detection.Timestamps {
			if !validTimestamp(ts) || ts > horizon {
				continue
			}
			if !found || ts > maxTs {
				maxTs = ts
				found = true
			}
		}
	}
	return maxTs, found
}

// createBuckets creates empty buckets for the given range
func (g *TimelineGenerator) createBuckets(count, brandCount int) []TimelineBucket {
	buckets := make([]TimelineBucket, count)
	for i := range buckets {
		buckets[i] = TimelineBucket{
			Index:        i,
			StartSeconds: float64(i) * g.opts.BucketSeconds,
			Values:       make([]int, brandCount),
		}
	}
	return buckets
}

// distributeDetections adds each scored detection to the buckets that claim it
func (g *TimelineGenerator) distributeDetections(d common.BrandDetection, horizon float64, sums []float64, hits []int) {
	width := g.opts.BucketSeconds
	last := len(sums) - 1

	for i, ts := range d.Timestamps {
		if !validTimestamp(ts) || ts > horizon {
			continue
		}
		score := d.ScoreOrAverage(i, g.opts.DefaultConfidence)

		if g.opts.Mode == TimelineNearest {
			idx := int(math.Floor(ts/width + 0.5))
			if idx > last {
				idx = last
			}
			sums[idx] += score
			hits[idx]++
			continue
		}

		// Only the buckets either side of ts/width can lie within half a width
		half := width / 2
		base := int(math.Floor(ts / width))
		for idx := base - 1; idx <= base+1; idx++ {
			if idx < 0 || idx > last {
				continue
			}
			if math.Abs(ts-float64(idx)*width) <= half {
				sums[idx] += score
				hits[idx]++
			}
		}
	}
}

func validTimestamp(ts float64) bool {
	return ts >= 0 && !math.IsInf(ts, 1)
}

// intensity converts a mean ratio to a rounded percentage in [0,100]
func intensity(mean float64) int {
	v := math.Round(mean * 100)
	switch {
	case !(v > 0):
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}

// GetTimelineStats returns statistical summary of the timeline
func (g *TimelineGenerator) GetTimelineStats(timeline *Timeline) TimelineStats {
	if timeline == nil || len(timeline.Buckets) == 0 {
		return TimelineStats{Brands: []BrandTimelineStats{}}
	}

	stats := TimelineStats{
		TotalBuckets:  len(timeline.Buckets),
		BucketSeconds: timeline.BucketSeconds,
		Brands:        make([]BrandTimelineStats, len(timeline.Brands)),
	}

	totals := make([]int, len(timeline.Brands))
	for b, name := range timeline.Brands {
		stats.Brands[b].Brand = name
	}

	for _, bucket := range timeline.Buckets {
		active := false
		for b, value := range bucket.Values {
			if value == 0 {
				continue
			}
			active = true

			bs := &stats.Brands[b]
			bs.ActiveBuckets++
			totals[b] += value
			if value > bs.PeakValue {
				bs.PeakValue = value
				bs.PeakStartSeconds = bucket.StartSeconds
			}
		}
		if active {
			stats.ActiveBuckets++
		}
	}

	for b := range stats.Brands {
		if stats.Brands[b].ActiveBuckets > 0 {
			stats.Brands[b].AverageActiveValue = float64(totals[b]) / float64(stats.Brands[b].ActiveBuckets)
		}
	}

	return stats
}

// DetectTrends fits a line to each brand's series. Timelines shorter than three
// buckets yield no trends.
func (g *TimelineGenerator) DetectTrends(timeline *Timeline) []TimelineTrend {
	if timeline == nil || len(timeline.Buckets) < 3 {
		return []TimelineTrend{}
	}

	trends := make([]TimelineTrend, 0, len(timeline.Brands))
	for b, name := range timeline.Brands {
		trends = append(trends, g.detectTrendInSeries(name, timeline, func(bucket TimelineBucket) float64 {
			return float64(bucket.Values[b])
		}))
	}
	return trends
}

// detectTrendInSeries detects trends in a time series using simple linear regression
func (g *TimelineGenerator) detectTrendInSeries(name string, timeline *Timeline, getValue func(TimelineBucket) float64) TimelineTrend {
	buckets := timeline.Buckets
	n := float64(len(buckets))

	var sumX, sumY, sumXY, sumXX float64
	for i, bucket := range buckets {
		x := float64(i)
		y := getValue(bucket)

		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)

	meanX := sumX / n
	meanY := sumY / n

	var ssX, ssY, ssXY float64
	for i, bucket := range buckets {
		dx := float64(i) - meanX
		dy := getValue(bucket) - meanY

		ssX += dx * dx
		ssY += dy * dy
		ssXY += dx * dy
	}

	var strength float64
	if ssX > 0 && ssY > 0 {
		strength = math.Abs(ssXY / math.Sqrt(ssX*ssY))
	}

	trendType := "stable"
	if slope > trendSlopeThreshold {
		trendType = "increasing"
	} else if slope < -trendSlopeThreshold {
		trendType = "decreasing"
	}

	return TimelineTrend{
		Brand:        name,
		Type:         trendType,
		Strength:     strength,
		Slope:        slope,
		StartSeconds: buckets[0].StartSeconds,
		EndSeconds:   buckets[len(buckets)-1].StartSeconds,
	}
}
