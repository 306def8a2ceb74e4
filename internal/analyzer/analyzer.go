package analyzer

import (
	"context"

	"github.com/yildizm/BrandSum/internal/common"
)

// Analyzer aggregates analysis records
type Analyzer interface {
	// Analyze aggregates a snapshot of records into a report
	Analyze(ctx context.Context, records []*common.AnalysisRecord) (*Report, error)
}

// Engine adds per-record timelines to an Analyzer
type Engine interface {
	Analyzer

	// Timeline buckets a single record's detections
	Timeline(record *common.AnalysisRecord) *TimelineAnalysis
}

var _ Engine = (*AnalyzerEngine)(nil)
