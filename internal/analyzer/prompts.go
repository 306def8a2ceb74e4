package analyzer

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-promptfmt"
)

// BrandReportPattern creates prompts asking an LLM to interpret a brand report
type BrandReportPattern struct {
	promptfmt.BasePattern
	Report             *Report
	SampleSize         int
	IncludeConfidence  bool
	IncludePerformance bool
}

// NewBrandReportPattern creates a new brand report pattern
func NewBrandReportPattern() *BrandReportPattern {
	return &BrandReportPattern{
		BasePattern: promptfmt.BasePattern{
			Description: "Interprets brand exposure and detection confidence across analysed videos",
			Tags:        []string{"brand-analytics", "brandsum", "sponsorship"},
		},
		SampleSize:         10,
		IncludeConfidence:  true,
		IncludePerformance: true,
	}
}

func (p *BrandReportPattern) WithReport(report *Report) *BrandReportPattern {
	p.Report = report
	return p
}

func (p *BrandReportPattern) WithSampleSize(size int) *BrandReportPattern {
	p.SampleSize = size
	return p
}

func (p *BrandReportPattern) WithoutConfidence() *BrandReportPattern {
	p.IncludeConfidence = false
	return p
}

func (p *BrandReportPattern) WithoutPerformance() *BrandReportPattern {
	p.IncludePerformance = false
	return p
}

func (p *BrandReportPattern) Build() *promptfmt.Prompt {
	if p.Report == nil {
		return promptfmt.New().
			System("You are a sponsorship analytics expert who evaluates brand visibility in video content.").
			User("Please review the provided brand detection data and summarise brand exposure.").
			Build()
	}

	r := p.Report
	pb := promptfmt.New().
		System("You are a BrandSum assistant specialising in brand exposure analytics. Provide structured insights about brand visibility, detection reliability and processing throughput.").
		User("Analyze this BrandSum report:\n\nVideos: %d (%d malformed)\nDistinct Brands: %d\nTotal Appearances: %d\nTotal Exposure: %.1fs\nAverage Confidence: %.1f%%",
			r.RecordCount,
			r.MalformedCount,
			r.Brands.DistinctBrands,
			r.Brands.TotalAppearances,
			r.Brands.TotalExposureSeconds,
			r.Dashboard.AverageConfidence)

	if len(r.Rankings) > 0 {
		p.addBrandContext(pb)
	}

	if p.IncludeConfidence && r.Confidence.Overall.Total > 0 {
		p.addConfidenceContext(pb)
	}

	if p.IncludePerformance && len(r.Stats.PerVideoPerformance) > 0 {
		p.addPerformanceContext(pb)
	}

	type BrandReportResponse struct {
		Summary       string `json:"summary"`
		ExposureScore int    `json:"exposure_score"` // 0-100 scale
		Brands        []struct {
			Name        string  `json:"name"`
			Visibility  string  `json:"visibility"`  // "dominant", "strong", "moderate", "weak"
			Reliability string  `json:"reliability"` // "high", "medium", "low"
			Confidence  float64 `json:"confidence"`  // 0-1 scale
			Notes       string  `json:"notes"`
		} `json:"brands"`
		Recommendations []struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Priority    string   `json:"priority"` // "high", "medium", "low"
			ActionItems []string `json:"action_items"`
		} `json:"recommendations"`
	}

	return pb.ExpectJSON(&BrandReportResponse{}).Build()
}

func (p *BrandReportPattern) addBrandContext(pb *promptfmt.PromptBuilder) {
	var b strings.Builder
	b.WriteString("Top Brands:\n")
	for i, ranked := range p.Report.Rankings {
		if i >= p.SampleSize {
			break
		}
		profile := ranked.Item
		fmt.Fprintf(&b, "%d. %s: %d appearances in %d videos, %.1fs exposure, confidence %.1f%% (consistency %s)\n",
			ranked.Rank,
			profile.Name,
			profile.TotalAppearances,
			profile.VideoCount,
			profile.TotalExposureSeconds,
			profile.AverageConfidence,
			profile.Consistency)
	}

	pb.AddContext("brands", b.String())
}

func (p *BrandReportPattern) addConfidenceContext(pb *promptfmt.PromptBuilder) {
	c := p.Report.Confidence
	text := fmt.Sprintf("Confidence Distribution (%d samples, average %.1f%%):\nHigh: %d, Medium: %d, Low: %d\nExcellent: %d, Good: %d, Fair: %d, Poor: %d\n",
		c.Overall.Total, c.Overall.Average,
		c.Overall.High, c.Overall.Medium, c.Overall.Low,
		c.Quality.Excellent, c.Quality.Good, c.Quality.Fair, c.Quality.Poor)

	pb.AddContext("confidence", text)
}

func (p *BrandReportPattern) addPerformanceContext(pb *promptfmt.PromptBuilder) {
	s := p.Report.Stats
	text := fmt.Sprintf("Processing Performance:\nTotal video: %.1fs, total analysis: %.1fs\nAverage processing speed: %.2fx, average FPS: %.1f\nFrames processed: %d\n",
		s.TotalVideoSeconds, s.TotalAnalysisSeconds,
		s.AverageProcessingSpeed, s.AverageFPS,
		s.TotalFramesProcessed)

	pb.AddContext("performance", text)
}

// TimelinePattern creates prompts for analyzing a record's brand timeline
type TimelinePattern struct {
	promptfmt.BasePattern
	Analysis *TimelineAnalysis
}

func NewTimelinePattern() *TimelinePattern {
	return &TimelinePattern{
		BasePattern: promptfmt.BasePattern{
			Description: "Analyzes how brand visibility evolves over a video",
			Tags:        []string{"timeline", "brand-analytics", "trends"},
		},
	}
}

func (tp *TimelinePattern) WithAnalysis(analysis *TimelineAnalysis) *TimelinePattern {
	tp.Analysis = analysis
	return tp
}

func (tp *TimelinePattern) Build() *promptfmt.Prompt {
	buckets := 0
	if tp.Analysis != nil && tp.Analysis.Timeline != nil {
		buckets = len(tp.Analysis.Timeline.Buckets)
	}

	pb := promptfmt.New().
		System("You are a video sponsorship analyst. Analyze when and how strongly brands appear over the course of a video.").
		User("Analyze the brand timeline of this video with %d time buckets", buckets)

	if buckets > 0 {
		tp.addTimelineContext(pb)
	}

	type TimelineResponse struct {
		Segments []struct {
			StartSeconds float64 `json:"start_seconds"`
			EndSeconds   float64 `json:"end_seconds"`
			Brand        string  `json:"brand"`
			Notable      string  `json:"notable"`
		} `json:"segments"`
		Trends []struct {
			Brand       string `json:"brand"`
			Trend       string `json:"trend"`
			Description string `json:"description"`
		} `json:"trends"`
	}

	return pb.ExpectJSON(&TimelineResponse{}).Build()
}

func (tp *TimelinePattern) addTimelineContext(pb *promptfmt.PromptBuilder) {
	var b strings.Builder
	b.WriteString("Per-brand summary:\n")
	for _, bs := range tp.Analysis.Stats.Brands {
		fmt.Fprintf(&b, "%s: active in %d buckets, peak %d at %.0fs, average %.1f\n",
			bs.Brand, bs.ActiveBuckets, bs.PeakValue, bs.PeakStartSeconds, bs.AverageActiveValue)
	}
	for _, trend := range tp.Analysis.Trends {
		fmt.Fprintf(&b, "%s trend: %s (strength %.2f)\n", trend.Brand, trend.Type, trend.Strength)
	}

	pb.AddContext("timeline", b.String())
}
