package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Count      lipgloss.Style
	Prompt     lipgloss.Style
	Item       lipgloss.Style
	ItemCursor lipgloss.Style
	Marker     lipgloss.Style
	URL        lipgloss.Style
	Cell       lipgloss.Style
	CellCursor lipgloss.Style
	Empty      lipgloss.Style
	Message    lipgloss.Style
	Error      lipgloss.Style
	HintKey    lipgloss.Style // Key portion of hints (e.g., "tab", "↑/↓")
	HintDesc   lipgloss.Style // Description portion of hints (e.g., "select", "move")
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	warn := lipgloss.AdaptiveColor{Light: "#8A5A44", Dark: "#AF875F"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Count: lipgloss.NewStyle().
			Foreground(subtle),

		Prompt: lipgloss.NewStyle().
			Foreground(subtle),

		Item: lipgloss.NewStyle().
			Foreground(primary),

		ItemCursor: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Marker: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Cell: lipgloss.NewStyle().
			Foreground(primary),

		CellCursor: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Message: lipgloss.NewStyle().
			Foreground(accent),

		Error: lipgloss.NewStyle().
			Foreground(warn),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
