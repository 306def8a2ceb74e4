// Package history lists stored analysis records, newest first, from a history
// file or a SQLite database.
package history

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/yildizm/BrandSum/internal/common"
)

// ErrNotFound is returned when a record does not exist or belongs to another owner
var ErrNotFound = errors.New("analysis not found")

// DefaultPageSize is used by Collect when the caller passes no page size
const DefaultPageSize = 50

// Query selects one page of records. An empty Owner lists every owner's
// records; a Limit of 0 or less returns everything from Offset on.
type Query struct {
	Owner  string
	Offset int
	Limit  int
}

// Page is one slice of a listing
type Page struct {
	Records []*common.AnalysisRecord `json:"records"`
	Total   int                      `json:"total"`
	HasMore bool                     `json:"has_more"`
}

// Source is a read-only, paginated listing of analysis records
type Source interface {
	List(ctx context.Context, q Query) (*Page, error)
}

// Collect drains every page of src into one snapshot
func Collect(ctx context.Context, src Source, owner string, pageSize int) ([]*common.AnalysisRecord, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	records := []*common.AnalysisRecord{}
	for offset := 0; ; offset += pageSize {
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		default:
		}

		page, err := src.List(ctx, Query{Owner: owner, Offset: offset, Limit: pageSize})
		if err != nil {
			return records, fmt.Errorf("listing records at offset %d: %w", offset, err)
		}
		records = append(records, page.Records...)

		if !page.HasMore || len(page.Records) == 0 {
			return records, nil
		}
	}
}

// MemorySource lists an in-memory snapshot
type MemorySource struct {
	records []*common.AnalysisRecord
}

// NewMemorySource wraps records. The slice is copied; the records are not.
func NewMemorySource(records []*common.AnalysisRecord) *MemorySource {
	sorted := make([]*common.AnalysisRecord, len(records))
	copy(sorted, records)
	SortNewestFirst(sorted)
	return &MemorySource{records: sorted}
}

// List returns the requested page
func (m *MemorySource) List(ctx context.Context, q Query) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := make([]*common.AnalysisRecord, 0, len(m.records))
	for _, r := range m.records {
		if q.Owner != "" && (r == nil || r.Username != q.Owner) {
			continue
		}
		matched = append(matched, r)
	}

	return paginate(matched, q), nil
}

func paginate(matched []*common.AnalysisRecord, q Query) *Page {
	page := &Page{Total: len(matched), Records: []*common.AnalysisRecord{}}

	start := q.Offset
	if start < 0 {
		start = 0
	}
	if start >= len(matched) {
		return page
	}

	end := len(matched)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}

	page.Records = append(page.Records, matched[start:end]...)
	page.HasMore = end < len(matched)
	return page
}

// SortNewestFirst orders records by timestamp, most recent first. Records with
// equal or unparseable timestamps keep their relative order, the latter last.
func SortNewestFirst(records []*common.AnalysisRecord) {
	keys := make(map[*common.AnalysisRecord]int64, len(records))
	for _, r := range records {
		keys[r] = math.MinInt64
		if t := r.CreatedAt(); !t.IsZero() {
			keys[r] = t.UnixNano()
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return keys[records[i]] > keys[records[j]]
	})
}
