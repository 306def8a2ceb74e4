package analyzer

import (
	"context"
	"time"

	"github.com/yildizm/BrandSum/internal/common"
	"github.com/yildizm/BrandSum/internal/logger"
)

// AnalyzerEngine implements the Analyzer and Engine interfaces
type AnalyzerEngine struct {
	timelineGen      *TimelineGenerator
	timelineOpts     TimelineOptions
	confidenceSource ConfidenceSource
	rankKey          string
	topN             int
	now              func() time.Time
	log              *logger.Logger
}

// Option configures an AnalyzerEngine
type Option func(*AnalyzerEngine)

// WithTimelineOptions sets the timeline bucketing used by Timeline
func WithTimelineOptions(opts TimelineOptions) Option {
	return func(e *AnalyzerEngine) {
		e.timelineOpts = opts
	}
}

// WithConfidenceSource selects the samples fed to the confidence classifier
func WithConfidenceSource(source ConfidenceSource) Option {
	return func(e *AnalyzerEngine) {
		e.confidenceSource = source
	}
}

// WithRanking sets the brand ranking key and how many entries to keep (0 keeps all)
func WithRanking(key string, topN int) Option {
	return func(e *AnalyzerEngine) {
		e.rankKey = key
		e.topN = topN
	}
}

// WithClock overrides the report timestamp source
func WithClock(now func() time.Time) Option {
	return func(e *AnalyzerEngine) {
		e.now = now
	}
}

// WithLogger sets the logger receiving per-stage timings
func WithLogger(log *logger.Logger) Option {
	return func(e *AnalyzerEngine) {
		e.log = log.WithComponent("engine")
	}
}

func NewEngine(opts ...Option) *AnalyzerEngine {
	e := &AnalyzerEngine{
		timelineOpts:     DefaultTimelineOptions(),
		confidenceSource: SourceBoth,
		rankKey:          BrandKeyAppearances,
		now:              time.Now,
		log:              logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.timelineGen = NewTimelineGenerator(e.timelineOpts)
	return e
}

// Analyze aggregates a snapshot of records into a report. The context is checked
// between stages; a cancelled run returns the partial report with ctx.Err().
func (e *AnalyzerEngine) Analyze(ctx context.Context, records []*common.AnalysisRecord) (*Report, error) {
	if _, err := RankBrands(nil, e.rankKey); err != nil {
		return nil, err
	}

	report := &Report{
		GeneratedAt:    e.now(),
		RecordCount:    len(records),
		MalformedCount: common.CountMalformed(records),
		RankedBy:       e.rankKey,
		Rankings:       []Ranked[BrandProfile]{},
	}

	start := time.Now()
	report.Stats = AggregateStats(records)
	e.log.Stage("stats", start, logger.Records(len(records)), logger.F("malformed", report.MalformedCount))

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return report, ctx.Err()
	default:
	}

	start = time.Now()
	report.Brands = AggregateBrands(records)
	e.log.Stage("brands", start, logger.Count(report.Brands.DistinctBrands))

	select {
	case <-ctx.Done():
		return report, ctx.Err()
	default:
	}

	start = time.Now()
	samples := CollectConfidenceSamples(records, e.confidenceSource)
	report.Confidence = ClassifyConfidence(samples)
	report.Dashboard = Summarize(records)
	e.log.Stage("confidence", start, logger.F("samples", len(samples)), logger.F("source", e.confidenceSource))

	select {
	case <-ctx.Done():
		return report, ctx.Err()
	default:
	}

	rankings, err := RankBrands(report.Brands.Profiles, e.rankKey)
	if err != nil {
		return report, err
	}
	if e.topN > 0 && len(rankings) > e.topN {
		rankings = rankings[:e.topN]
	}
	report.Rankings = rankings
	e.log.Debug("ranked %d brands by %s", len(rankings), e.rankKey)

	return report, nil
}

// Timeline buckets a single record and derives its statistics and trends
func (e *AnalyzerEngine) Timeline(record *common.AnalysisRecord) *TimelineAnalysis {
	timeline := e.timelineGen.GenerateRecordTimeline(record)

	analysis := &TimelineAnalysis{
		Timeline: timeline,
		Stats:    e.timelineGen.GetTimelineStats(timeline),
		Trends:   e.timelineGen.DetectTrends(timeline),
		Summary:  SummarizeRecord(record),
	}
	if record != nil {
		analysis.RecordID = record.ID
		analysis.Title = record.Title()
	}
	return analysis
}

// TimelineOptions returns the engine's effective timeline options
func (e *AnalyzerEngine) TimelineOptions() TimelineOptions {
	return e.timelineGen.opts
}
