// Package action binds store mutations and host commands into the operations
// the UI invokes.
package action

import (
	"context"
	"log/slog"
	"time"

	"github.com/nikbrunner/tabs/internal/host"
	"github.com/nikbrunner/tabs/internal/keyboard"
	"github.com/nikbrunner/tabs/internal/model"
	"github.com/nikbrunner/tabs/internal/selector"
)

// DefaultTimeout bounds a single host command.
const DefaultTimeout = 5 * time.Second

// Runner executes a host command. The default runs it on a new goroutine.
type Runner func(fn func())

// Go runs fn on a new goroutine.
func Go(fn func()) { go fn() }

// Inline runs fn on the calling goroutine. Tests use it to observe host calls
// without synchronisation.
func Inline(fn func()) { fn() }

// DragEnd is the result of a finished drag in the tab list.
type DragEnd struct {
	ID       int
	NewIndex int
}

// Params configures a Dispatcher.
type Params struct {
	State      *model.State
	Host       host.Controller
	Selector   *selector.Selector
	Controller keyboard.Controller
	Run        Runner
	Timeout    time.Duration
}

// Dispatcher is the single entry point for user actions.
type Dispatcher struct {
	state      *model.State
	host       host.Controller
	sel        *selector.Selector
	controller keyboard.Controller
	run        Runner
	timeout    time.Duration
}

// New creates a Dispatcher. State and Host are required.
func New(p Params) *Dispatcher {
	d := &Dispatcher{
		state:      p.State,
		host:       p.Host,
		sel:        p.Selector,
		controller: p.Controller,
		run:        p.Run,
		timeout:    p.Timeout,
	}
	if d.sel == nil {
		d.sel = selector.New(0)
	}
	if d.run == nil {
		d.run = Go
	}
	if d.timeout <= 0 {
		d.timeout = DefaultTimeout
	}
	return d
}

// SetMode switches the input mode.
func (d *Dispatcher) SetMode(m model.Mode) {
	d.state.SetMode(m)
}

// SetHighlightedTabID moves the keyboard cursor.
func (d *Dispatcher) SetHighlightedTabID(id int) {
	d.state.SetHighlightedTabID(id)
}

// SelectTab adds id to the selection.
func (d *Dispatcher) SelectTab(id int) {
	d.state.SelectTab(id)
}

// DeselectTab removes id from the selection.
func (d *Dispatcher) DeselectTab(id int) {
	d.state.DeselectTab(id)
}

// ToggleSelected flips the selection of id.
func (d *Dispatcher) ToggleSelected(id int) {
	d.state.ToggleSelected(id)
}

// ClearSelection empties the selection.
func (d *Dispatcher) ClearSelection() {
	d.state.ClearSelection()
}

// SetQuery replaces the search query.
func (d *Dispatcher) SetQuery(q string) {
	d.state.SetQuery(q)
}

// CycleListView switches to the next layout and returns it.
func (d *Dispatcher) CycleListView() model.ListView {
	next := d.state.ListView().Next()
	d.state.SetListView(next)
	return next
}

// Activate asks the host to focus tab id. The call does not block and
// failures are only logged.
func (d *Dispatcher) Activate(id int) {
	d.call("activate", id, func(ctx context.Context) error {
		return d.host.Activate(ctx, id)
	})
}

// Move asks the host to move tab id to index. The call does not block and
// failures are only logged. The local mirror follows once the host reports
// the move.
func (d *Dispatcher) Move(id, index int) {
	d.call("move", id, func(ctx context.Context) error {
		return d.host.Move(ctx, id, index)
	}, "index", index)
}

// DragEnd forwards a finished drag to the host.
func (d *Dispatcher) DragEnd(e DragEnd) {
	d.Move(e.ID, e.NewIndex)
}

func (d *Dispatcher) call(name string, id int, fn func(context.Context) error, attrs ...any) {
	timeout := d.timeout
	d.run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			args := append([]any{"action", name, "id", id, "err", err}, attrs...)
			slog.Warn("host command failed", args...)
		}
	})
}

// Apply carries out an intent produced by the keyboard controller.
func (d *Dispatcher) Apply(in keyboard.Intent) {
	switch in.Kind {
	case keyboard.IntentHighlight:
		d.SetHighlightedTabID(in.TabID)
	case keyboard.IntentActivate:
		d.Activate(in.TabID)
	case keyboard.IntentSetMode:
		d.SetMode(in.Mode)
	}
}

// HandleKey runs key through the keyboard controller against the current
// state and applies the resulting intent.
func (d *Dispatcher) HandleKey(key keyboard.Key) keyboard.Result {
	res := d.controller.Handle(d.context(), key)
	d.Apply(res.Intent)
	return res
}

func (d *Dispatcher) context() keyboard.Context {
	id, ok := d.state.HighlightedTabID()
	return keyboard.Context{
		Mode:          d.state.Mode(),
		HighlightedID: id,
		HasHighlight:  ok,
		Query:         d.state.Query(),
		Visible:       d.sel.VisibleTabs(d.state),
	}
}

// HighlightedTab returns the highlighted tab if it is still known.
func (d *Dispatcher) HighlightedTab() (model.Tab, bool) {
	id, ok := d.state.HighlightedTabID()
	if !ok {
		return model.Tab{}, false
	}
	return d.state.TabByID(id)
}

// VisibleTabs returns the tabs matching the current query in window order.
func (d *Dispatcher) VisibleTabs() []model.Tab {
	return d.sel.VisibleTabs(d.state)
}

// SelectedTabs returns the selected tabs in window order.
func (d *Dispatcher) SelectedTabs() []model.Tab {
	var out []model.Tab
	for _, t := range d.sel.SortedTabs(d.state) {
		if d.state.IsSelected(t.ID) {
			out = append(out, t)
		}
	}
	return out
}
