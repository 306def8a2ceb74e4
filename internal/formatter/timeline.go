package formatter

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/go-termfmt"
)

// intensityLevels maps 0, 1-25, 26-50, 51-75 and 76-100 to one cell each
var intensityLevels = []string{"·", "░", "▒", "▓", "█"}

// FormatTimeline renders one record's timeline as text, json or prompt
func FormatTimeline(analysis *analyzer.TimelineAnalysis, format string, opts Options) ([]byte, error) {
	if analysis == nil || analysis.Timeline == nil {
		return nil, fmt.Errorf("no timeline to format")
	}

	switch strings.ToLower(format) {
	case "", "text", "terminal", "markdown", "md":
		return []byte(renderTimelineText(analysis, opts)), nil
	case "json":
		if opts.Compact {
			return json.Marshal(analysis)
		}
		return json.MarshalIndent(analysis, "", "  ")
	case "prompt":
		prompt := analyzer.NewTimelinePattern().WithAnalysis(analysis).Build()
		return []byte(prompt.String() + "\n"), nil
	default:
		return nil, fmt.Errorf("%w %q for timeline (must be one of: text, json, prompt)", ErrUnknownFormat, format)
	}
}

func intensityCell(value int) string {
	if value <= 0 {
		return intensityLevels[0]
	}
	idx := 1 + (value-1)/25
	if idx >= len(intensityLevels) {
		idx = len(intensityLevels) - 1
	}
	return intensityLevels[idx]
}

func renderTimelineText(analysis *analyzer.TimelineAnalysis, opts Options) string {
	termOpts := termfmt.DefaultOptions()
	termOpts.Color = opts.Color
	termOpts.Emoji = opts.Emoji

	var b strings.Builder
	tl := analysis.Timeline

	name := analysis.Title
	if name == "" {
		name = analysis.RecordID
	}
	if name == "" {
		name = "record"
	}
	fmt.Fprintf(&b, "%s Timeline: %s\n", termfmt.GetEmoji("statistics", termOpts), name)
	fmt.Fprintf(&b, "%d bucket(s) of %gs\n\n", len(tl.Buckets), tl.BucketSeconds)

	if len(tl.Brands) == 0 || len(tl.Buckets) == 0 {
		b.WriteString("No timestamped detections.\n")
		return b.String()
	}

	width := 0
	for _, brand := range tl.Brands {
		if len(brand) > width {
			width = len(brand)
		}
	}

	for i, brand := range tl.Brands {
		var row strings.Builder
		for _, bucket := range tl.Buckets {
			row.WriteString(intensityCell(bucket.Values[i]))
		}
		fmt.Fprintf(&b, "%-*s │%s│\n", width, brand, row.String())
	}

	end := tl.Buckets[len(tl.Buckets)-1].StartSeconds
	axis := fmt.Sprintf("0s%*s", len(tl.Buckets)-2, fmt.Sprintf("%gs", end))
	if len(tl.Buckets) < 2 {
		axis = "0s"
	}
	fmt.Fprintf(&b, "%-*s  %s\n\n", width, "", axis)

	items := make([]termfmt.TreeItem, 0, len(analysis.Stats.Brands))
	for i, bs := range analysis.Stats.Brands {
		item := termfmt.TreeItem{
			Label: bs.Brand,
			Value: fmt.Sprintf("active in %d/%d bucket(s), peak %d at %gs", bs.ActiveBuckets, analysis.Stats.TotalBuckets, bs.PeakValue, bs.PeakStartSeconds),
			Last:  i == len(analysis.Stats.Brands)-1,
		}
		for _, trend := range analysis.Trends {
			if trend.Brand == bs.Brand {
				item.Children = []termfmt.TreeItem{{
					Label: "Trend",
					Value: fmt.Sprintf("%s (strength %.2f)", trend.Type, trend.Strength),
					Last:  true,
				}}
			}
		}
		items = append(items, item)
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, termOpts) + "\n")

	s := analysis.Summary
	if s.MostDetectedBrand != "" {
		fmt.Fprintf(&b, "\nMost detected: %s; %d appearance(s) across %d brand(s), %s on screen\n",
			s.MostDetectedBrand, s.TotalAppearances, s.BrandCount, FormatSeconds(s.TotalDetectionSeconds))
	}

	return b.String()
}
