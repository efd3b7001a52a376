// Package keyboard turns key presses into navigation, commit and mode intents.
package keyboard

import (
	"slices"

	"github.com/nikbrunner/tabs/internal/model"
)

// IntentKind is what a key press asks the dispatcher to do.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentHighlight
	IntentActivate
	IntentSetMode
)

// Intent is the outcome of handling one key press.
type Intent struct {
	Kind  IntentKind
	TabID int        // IntentHighlight, IntentActivate
	Mode  model.Mode // IntentSetMode
}

// Result pairs an intent with whether the host should suppress the key's
// default action.
type Result struct {
	Intent         Intent
	PreventDefault bool
}

// Context is the state a key press is evaluated against.
type Context struct {
	Mode          model.Mode
	HighlightedID int
	HasHighlight  bool
	Query         string
	Visible       []model.Tab
}

// Policy holds the tunable parts of the key handling.
type Policy struct {
	// IgnoreModifiers keeps bare modifier presses from entering search mode.
	IgnoreModifiers bool
}

// Controller is the keyboard state machine. The zero value uses the default policy.
type Controller struct {
	Policy Policy
}

// New creates a Controller with the given policy.
func New(p Policy) Controller {
	return Controller{Policy: p}
}

// Handle evaluates key against ctx.
func (c Controller) Handle(ctx Context, key Key) Result {
	switch key {
	case KeyArrowUp:
		return navigate(NavigateUp(ctx.Visible, ctx.HighlightedID, ctx.HasHighlight))

	case KeyArrowDown:
		return navigate(NavigateDown(ctx.Visible, ctx.HighlightedID, ctx.HasHighlight))

	case KeyEnter:
		if !ctx.HasHighlight {
			return Result{PreventDefault: true}
		}
		return Result{
			Intent:         Intent{Kind: IntentActivate, TabID: ctx.HighlightedID},
			PreventDefault: true,
		}

	case KeyBackspace:
		if ctx.Mode == model.ModeSearch && ctx.Query == "" {
			return Result{Intent: Intent{Kind: IntentSetMode, Mode: model.ModeDefault}}
		}
		return Result{}

	case KeyModifier:
		if c.Policy.IgnoreModifiers {
			return Result{}
		}
	}

	return Result{Intent: Intent{Kind: IntentSetMode, Mode: model.ModeSearch}}
}

func navigate(id int, ok bool) Result {
	if !ok {
		return Result{PreventDefault: true}
	}
	return Result{
		Intent:         Intent{Kind: IntentHighlight, TabID: id},
		PreventDefault: true,
	}
}

// NavigateUp returns the tab before current in visible, wrapping from the
// first to the last. An unset or stale current selects the last tab.
// It returns false only when visible is empty.
func NavigateUp(visible []model.Tab, current int, hasCurrent bool) (int, bool) {
	if len(visible) == 0 {
		return 0, false
	}
	last := len(visible) - 1
	pos := position(visible, current, hasCurrent)
	if pos <= 0 {
		return visible[last].ID, true
	}
	return visible[pos-1].ID, true
}

// NavigateDown returns the tab after current in visible, wrapping from the
// last to the first. An unset or stale current selects the first tab.
// It returns false only when visible is empty.
func NavigateDown(visible []model.Tab, current int, hasCurrent bool) (int, bool) {
	if len(visible) == 0 {
		return 0, false
	}
	pos := position(visible, current, hasCurrent)
	if pos < 0 || pos == len(visible)-1 {
		return visible[0].ID, true
	}
	return visible[pos+1].ID, true
}

func position(visible []model.Tab, id int, ok bool) int {
	if !ok {
		return -1
	}
	return slices.IndexFunc(visible, func(t model.Tab) bool { return t.ID == id })
}
