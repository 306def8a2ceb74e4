package cli

import (
	"strings"

	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/BrandSum/internal/emoji"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// GetConsistencyEmoji returns emoji for brand consistency tiers with fallback support
func GetConsistencyEmoji(tier analyzer.ConsistencyTier) string {
	switch tier {
	case analyzer.ConsistencyHigh:
		return GetEmoji("success")
	case analyzer.ConsistencyMedium:
		return GetEmoji("warning")
	case analyzer.ConsistencyLow:
		return GetEmoji("error")
	default:
		return GetEmoji("info")
	}
}

// GetEfficiencyEmoji returns emoji for processing efficiency tiers
func GetEfficiencyEmoji(tier analyzer.EfficiencyTier) string {
	switch tier {
	case analyzer.TierRealTimePlus:
		return GetEmoji("rocket")
	case analyzer.TierNearRealTime:
		return GetEmoji("success")
	default:
		return GetEmoji("slow")
	}
}

// GetTrendEmoji returns emoji for timeline trend directions
func GetTrendEmoji(trend string) string {
	switch trend {
	case "increasing":
		return GetEmoji("trend_up")
	case "decreasing":
		return GetEmoji("trend_down")
	default:
		return GetEmoji("trend_flat")
	}
}

// CreateConfidenceBar creates ASCII confidence bar for a 0-100 percentage
func CreateConfidenceBar(percent float64) string {
	barLength := int(percent / 10) // 10 character bar
	if barLength < 0 {
		barLength = 0
	}
	if barLength > 10 {
		barLength = 10
	}

	if isEmojiDisabled() {
		return "[" + strings.Repeat("#", barLength) + strings.Repeat("-", 10-barLength) + "]"
	}
	return strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
}
