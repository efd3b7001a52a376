// Package tui is the terminal front end: it renders the tab list and feeds
// key presses to the action dispatcher.
package tui

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/tabs/internal/action"
	"github.com/nikbrunner/tabs/internal/host"
	"github.com/nikbrunner/tabs/internal/keyboard"
	"github.com/nikbrunner/tabs/internal/model"
	"github.com/nikbrunner/tabs/internal/selector"
	"github.com/nikbrunner/tabs/internal/tui/layout"
)

// hostEventMsg carries one browser event into the update loop.
type hostEventMsg struct{ ev host.Event }

// hostClosedMsg reports that the host stopped delivering events.
type hostClosedMsg struct{}

// pendingChanges collects store notifications between two updates.
type pendingChanges struct {
	seen map[model.Change]bool
}

func (p *pendingChanges) add(c model.Change) { p.seen[c] = true }

func (p *pendingChanges) take() map[model.Change]bool {
	seen := p.seen
	p.seen = make(map[model.Change]bool)
	return seen
}

// App is the main bubbletea model.
type App struct {
	state        *model.State
	sel          *selector.Selector
	dispatch     *action.Dispatcher
	events       <-chan host.Event
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	copy         func(string) error
	title        string

	input   textinput.Model
	changes *pendingChanges

	message   string
	isError   bool
	connected bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	State      *model.State
	Dispatcher *action.Dispatcher
	Selector   *selector.Selector // must be the one the Dispatcher uses
	Events     <-chan host.Event  // optional
	Title      string             // optional, shown in the header

	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Clipboard    func(string) error   // optional, uses the system clipboard if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	sel := params.Selector
	if sel == nil {
		sel = selector.New(0)
	}

	title := params.Title
	if title == "" {
		title = "tabs"
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Search tabs..."
	input.CharLimit = layoutCfg.Input.SearchCharLimit
	input.Width = layoutCfg.Input.SearchWidth
	input.SetValue(params.State.Query())

	changes := &pendingChanges{seen: make(map[model.Change]bool)}
	params.State.Subscribe(changes.add)

	app := App{
		state:        params.State,
		sel:          sel,
		dispatch:     params.Dispatcher,
		events:       params.Events,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		copy:         copyFn,
		title:        title,
		input:        input,
		changes:      changes,
		width:        80,
		height:       24,
	}
	if params.State.Mode() == model.ModeSearch {
		app.input.Focus()
	}
	return app
}

// WithDimensions returns a copy of the App with the given terminal size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Message returns the status line text.
func (a App) Message() string {
	return a.message
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return listenHost(a.events)
}

// listenHost waits for the next host event. It is re-armed after every event.
func listenHost(events <-chan host.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return hostClosedMsg{}
		}
		return hostEventMsg{ev: ev}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case hostEventMsg:
		a.applyHostEvent(msg.ev)
		a.sync()
		return a, listenHost(a.events)

	case hostClosedMsg:
		a.connected = false
		a.setError("browser connection closed")
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) applyHostEvent(ev host.Event) {
	switch ev.Type {
	case host.EventSnapshot:
		if !a.connected {
			a.setMessage("")
		}
		a.connected = true
	case host.EventDisconnected:
		a.connected = false
		a.setError("browser disconnected, waiting for it to reconnect")
	}
	host.Apply(a.state, ev)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Clear):
		a.dispatch.SetQuery("")
		a.dispatch.SetMode(model.ModeDefault)
		a.sync()
		return a, nil

	case key.Matches(msg, a.keys.ToggleSelect):
		if tab, ok := a.highlightedVisible(); ok {
			a.dispatch.ToggleSelected(tab.ID)
		}
		return a, nil

	case key.Matches(msg, a.keys.ClearSelection):
		a.dispatch.ClearSelection()
		return a, nil

	case key.Matches(msg, a.keys.CopyURLs):
		a.copyURLs()
		return a, nil

	case key.Matches(msg, a.keys.MoveUp):
		a.moveHighlighted(-1)
		return a, nil

	case key.Matches(msg, a.keys.MoveDown):
		a.moveHighlighted(1)
		return a, nil

	case key.Matches(msg, a.keys.CycleView):
		a.dispatch.CycleListView()
		return a, nil
	}

	a.dispatch.HandleKey(keyFromMsg(msg))
	a.sync()

	if a.state.Mode() == model.ModeSearch && isTextInput(msg) {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		a.dispatch.SetQuery(a.input.Value())
		a.sync()
		return a, cmd
	}
	return a, nil
}

// highlightedVisible returns the highlighted tab if the current query shows it.
func (a App) highlightedVisible() (model.Tab, bool) {
	tab, ok := a.dispatch.HighlightedTab()
	if !ok || !slices.ContainsFunc(a.sel.VisibleTabs(a.state), func(t model.Tab) bool { return t.ID == tab.ID }) {
		return model.Tab{}, false
	}
	return tab, true
}

// sync brings the text input in line with the store.
func (a *App) sync() {
	changed := a.changes.take()
	if changed[model.ChangeMode] {
		if a.state.Mode() == model.ModeSearch {
			a.input.Focus()
		} else {
			a.input.Blur()
		}
	}
	if changed[model.ChangeQuery] && a.input.Value() != a.state.Query() {
		a.input.SetValue(a.state.Query())
	}
}

// copyURLs copies the selected tabs' URLs, or the highlighted tab's URL when
// nothing is selected.
func (a *App) copyURLs() {
	tabs := a.dispatch.SelectedTabs()
	if len(tabs) == 0 {
		if tab, ok := a.dispatch.HighlightedTab(); ok {
			tabs = []model.Tab{tab}
		}
	}
	if len(tabs) == 0 {
		return
	}

	urls := make([]string, len(tabs))
	for i, t := range tabs {
		urls[i] = t.URL
	}
	if err := a.copy(strings.Join(urls, "\n")); err != nil {
		slog.Warn("copy to clipboard failed", "err", err)
		a.setError("copy failed: " + err.Error())
		return
	}
	if len(urls) == 1 {
		a.setMessage("copied " + urls[0])
	} else {
		a.setMessage(fmt.Sprintf("copied %d URLs", len(urls)))
	}
}

// moveHighlighted asks the host to shift the highlighted tab by delta slots.
func (a *App) moveHighlighted(delta int) {
	tab, ok := a.dispatch.HighlightedTab()
	if !ok {
		return
	}
	target := tab.Index + delta
	if target < 0 || target >= a.sel.NumTabs(a.state) {
		return
	}
	a.dispatch.DragEnd(action.DragEnd{ID: tab.ID, NewIndex: target})
}

func (a *App) setMessage(s string) {
	a.message = s
	a.isError = false
}

func (a *App) setError(s string) {
	a.message = s
	a.isError = true
}

// keyFromMsg maps a terminal key to the controller's key set. Terminals do
// not report bare modifier presses, so KeyModifier never comes from here.
func keyFromMsg(msg tea.KeyMsg) keyboard.Key {
	if msg.Alt {
		return keyboard.KeyOther
	}
	switch msg.Type {
	case tea.KeyUp:
		return keyboard.KeyArrowUp
	case tea.KeyDown:
		return keyboard.KeyArrowDown
	case tea.KeyEnter:
		return keyboard.KeyEnter
	case tea.KeyBackspace:
		return keyboard.KeyBackspace
	}
	return keyboard.KeyOther
}

// isTextInput reports whether the search input should see msg.
func isTextInput(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete,
		tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd,
		tea.KeyCtrlW, tea.KeyCtrlU, tea.KeyCtrlK, tea.KeyCtrlA, tea.KeyCtrlE:
		return true
	}
	return false
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
