package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":           {"❌", "[ERR]"},
	"warning":         {"⚠️", "[WRN]"},
	"info":            {"ℹ️", "[INF]"},
	"success":         {"✅", "[OK]"},
	"insight":         {"💡", "[INS]"},
	"statistics":      {"📊", "[STATS]"},
	"recommendations": {"📋", "[REC]"},
	"rocket":          {"🚀", "[FAST]"},
	"slow":            {"🐢", "[SLOW]"},
	"brand":           {"🏷️", "[BRD]"},
	"video":           {"🎬", "[VID]"},
	"timeline":        {"🕒", "[TL]"},
	"trend_up":        {"📈", "[UP]"},
	"trend_down":      {"📉", "[DOWN]"},
	"trend_flat":      {"➖", "[FLAT]"},
	"database":        {"🗄️", "[DB]"},
	"watch":           {"👀", "[WATCH]"},
	"help":            {"❓", "[?]"},
	"target":          {"🎯", "[>]"},
	"scale":           {"⚖️", "[BAL]"},
	"door":            {"🚪", "[EXIT]"},
	"number":          {"🔢", "[#]"},
	"folder":          {"📁", "[DIR]"},
	"file":            {"📄", "[FILE]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}
