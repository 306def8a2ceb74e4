package analyzer

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownRankKey is returned for a ranking key the target does not support
var ErrUnknownRankKey = errors.New("unknown rank key")

// Ranked pairs an entry with its 1-based rank and the key value it was sorted by
type Ranked[T any] struct {
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
	Item  T       `json:"item"`
}

// Rank sorts items by key, highest first. Equal keys keep their input order.
// NaN keys sort after every number. Score is the key value as returned.
func Rank[T any](items []T, key func(T) float64) []Ranked[T] {
	scores := make([]float64, len(items))
	sortKeys := make([]float64, len(items))
	order := make([]int, len(items))
	for i, item := range items {
		scores[i] = key(item)
		sortKeys[i] = scores[i]
		if math.IsNaN(sortKeys[i]) {
			sortKeys[i] = math.Inf(-1)
		}
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sortKeys[order[i]] > sortKeys[order[j]]
	})

	ranked := make([]Ranked[T], len(items))
	for pos, i := range order {
		ranked[pos] = Ranked[T]{Rank: pos + 1, Score: scores[i], Item: items[i]}
	}
	return ranked
}

// Brand ranking keys
const (
	BrandKeyAppearances = "appearances"
	BrandKeyExposure    = "exposure"
	BrandKeyConfidence  = "confidence"
	BrandKeyVideos      = "videos"
)

// Video ranking keys
const (
	VideoKeyEfficiency   = "efficiency"
	VideoKeySpeed        = "speed"
	VideoKeyAnalysisTime = "analysis-time"
	VideoKeyDuration     = "duration"
)

var brandKeys = map[string]func(BrandProfile) float64{
	BrandKeyAppearances: func(p BrandProfile) float64 { return float64(p.TotalAppearances) },
	BrandKeyExposure:    func(p BrandProfile) float64 { return p.TotalExposureSeconds },
	BrandKeyConfidence:  func(p BrandProfile) float64 { return p.AverageConfidence },
	BrandKeyVideos:      func(p BrandProfile) float64 { return float64(p.VideoCount) },
}

var videoKeys = map[string]func(VideoPerformance) float64{
	VideoKeyEfficiency:   func(v VideoPerformance) float64 { return v.Efficiency },
	VideoKeySpeed:        func(v VideoPerformance) float64 { return v.ProcessingSpeed },
	VideoKeyAnalysisTime: func(v VideoPerformance) float64 { return v.AnalysisSeconds },
	VideoKeyDuration:     func(v VideoPerformance) float64 { return v.VideoSeconds },
}

// BrandRankKeys lists the valid brand ranking keys
func BrandRankKeys() []string {
	return []string{BrandKeyAppearances, BrandKeyExposure, BrandKeyConfidence, BrandKeyVideos}
}

// VideoRankKeys lists the valid video ranking keys
func VideoRankKeys() []string {
	return []string{VideoKeyEfficiency, VideoKeySpeed, VideoKeyAnalysisTime, VideoKeyDuration}
}

// RankBrands ranks profiles by one of BrandRankKeys
func RankBrands(profiles []BrandProfile, key string) ([]Ranked[BrandProfile], error) {
	fn, ok := brandKeys[key]
	if !ok {
		return nil, unknownKey(key, BrandRankKeys())
	}
	return Rank(profiles, fn), nil
}

// RankVideos ranks per-video performance by one of VideoRankKeys
func RankVideos(videos []VideoPerformance, key string) ([]Ranked[VideoPerformance], error) {
	fn, ok := videoKeys[key]
	if !ok {
		return nil, unknownKey(key, VideoRankKeys())
	}
	return Rank(videos, fn), nil
}

func unknownKey(key string, valid []string) error {
	return fmt.Errorf("%w %q (valid keys: %s)", ErrUnknownRankKey, key, strings.Join(valid, ", "))
}
