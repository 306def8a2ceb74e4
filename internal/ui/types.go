package ui

import (
	"context"

	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/BrandSum/internal/common"
)

// Tab is one dashboard page
type Tab int

const (
	TabOverview Tab = iota
	TabBrands
	TabConfidence
	TabPerformance
)

var tabNames = []string{"Overview", "Brands", "Confidence", "Performance"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// Snapshot is one report together with the records it was built from
type Snapshot struct {
	Records []*common.AnalysisRecord
	Report  *analyzer.Report

	// Timeline buckets one record; nil disables the timeline view
	Timeline func(*common.AnalysisRecord) *analyzer.TimelineAnalysis
}

// LoadFunc produces a fresh snapshot; the dashboard calls it on start and on reload
type LoadFunc func(ctx context.Context) (*Snapshot, error)
