package tui

import (
	"strings"

	"github.com/nikbrunner/tabs/internal/model"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "↑/↓", "enter")
	Desc string // Short description (e.g., "move", "switch")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints
	Action []Hint // Tab actions
	System []Hint // esc, quit
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// getContextualHints returns the hints for the current mode.
func (a App) getContextualHints() HintSet {
	if a.state.Mode() == model.ModeSearch {
		return a.getSearchModeHints()
	}
	return a.getDefaultModeHints()
}

func (a App) getDefaultModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "↑/↓", Desc: "move"},
			{Key: "enter", Desc: "switch"},
			{Key: "type", Desc: "search"},
		},
		Action: []Hint{
			{Key: "tab", Desc: "select"},
			{Key: "ctrl+y", Desc: "copy"},
			{Key: "alt+↑/↓", Desc: "reorder"},
			{Key: "ctrl+v", Desc: a.state.ListView().Next().String()},
		},
		System: []Hint{
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
	if len(a.state.SelectedTabIDs()) > 0 {
		hints.Action = append(hints.Action, Hint{Key: "ctrl+x", Desc: "unselect"})
	}
	return hints
}

func (a App) getSearchModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "↑/↓", Desc: "move"},
			{Key: "enter", Desc: "switch"},
		},
		Action: []Hint{
			{Key: "tab", Desc: "select"},
		},
		System: []Hint{
			{Key: "esc", Desc: "clear"},
		},
	}
}
