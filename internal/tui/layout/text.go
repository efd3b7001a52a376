package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const resetCode = "\x1b[0m"

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the display width of a string, ignoring ANSI codes.
// Wide runes count as two cells.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText truncates plain text to maxWidth cells with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text, false
	}

	ellipsisWidth := runewidth.StringWidth(cfg.Ellipsis)
	if maxWidth <= ellipsisWidth {
		// Not enough room for any text + ellipsis
		return runewidth.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}

	return runewidth.Truncate(text, maxWidth-ellipsisWidth, "") + cfg.Ellipsis, true
}

// TruncateWithPrefixSuffix truncates text while preserving prefix and suffix.
// Example: TruncateWithPrefixSuffix("Development", 12, "* ", "/", cfg) -> "* Develo.../"
// Returns the truncated text and whether truncation occurred.
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	combined := prefix + text + suffix
	if runewidth.StringWidth(combined) <= maxWidth {
		return combined, false
	}

	overhead := runewidth.StringWidth(prefix) + runewidth.StringWidth(suffix) + runewidth.StringWidth(cfg.Ellipsis)
	if overhead >= maxWidth {
		// Not enough room even for prefix + ellipsis + suffix
		return TruncateText(combined, maxWidth, cfg)
	}

	return prefix + runewidth.Truncate(text, maxWidth-overhead, "") + cfg.Ellipsis + suffix, true
}

// TruncateANSIAware truncates styled text, preserving ANSI codes.
// A reset code is appended after truncation to prevent style bleed.
func TruncateANSIAware(styledText string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleLength(styledText) <= maxWidth {
		return styledText
	}
	return ansi.Truncate(styledText, maxWidth, cfg.Ellipsis) + resetCode
}

// PadRight pads s with spaces up to width cells. ANSI codes do not count.
func PadRight(s string, width int) string {
	if gap := width - VisibleLength(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
