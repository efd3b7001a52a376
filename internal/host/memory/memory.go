// Package memory implements an in-process browser for tests and offline use.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/nikbrunner/tabs/internal/host"
	"github.com/nikbrunner/tabs/internal/model"
	"github.com/nikbrunner/tabs/internal/selector"
)

// eventBuffer bounds the number of undelivered events before Browser drops them.
const eventBuffer = 256

// Browser is a fake single-window browser. It is safe for concurrent use.
type Browser struct {
	mu       sync.Mutex
	state    *model.State
	nextID   int
	active   int
	failWith error
	calls    []Call
	closed   bool
	events   chan host.Event
}

// Call records a command received by the Browser.
type Call struct {
	Action string // "activate" or "move"
	TabID  int
	Index  int
}

// New creates a Browser holding tabs. IDs of later opened tabs continue after
// the highest given ID.
func New(tabs []model.Tab) *Browser {
	state := model.NewState()
	state.SetTabs(tabs)

	nextID := 1
	for _, t := range tabs {
		nextID = max(nextID, t.ID+1)
	}

	b := &Browser{
		state:  state,
		nextID: nextID,
		events: make(chan host.Event, eventBuffer),
	}
	b.emit(host.Event{Type: host.EventSnapshot, Tabs: selector.Sort(tabs)})
	return b
}

// Events implements host.Host.
func (b *Browser) Events() <-chan host.Event {
	return b.events
}

// Close implements host.Host.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
	return nil
}

// Activate implements host.Controller.
func (b *Browser) Activate(_ context.Context, id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, Call{Action: "activate", TabID: id})
	if b.failWith != nil {
		return b.failWith
	}
	if _, ok := b.state.TabByID(id); !ok {
		return host.ErrTabNotFound
	}
	b.active = id
	return nil
}

// Move implements host.Controller.
func (b *Browser) Move(_ context.Context, id, index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, Call{Action: "move", TabID: id, Index: index})
	if b.failWith != nil {
		return b.failWith
	}
	if !b.state.MoveTab(id, index) {
		return host.ErrTabNotFound
	}
	tab, _ := b.state.TabByID(id)
	b.emit(host.Event{Type: host.EventMoved, Tab: tab})
	return nil
}

// Open adds a tab at the end of the window and returns it.
func (b *Browser) Open(title, url string) model.Tab {
	b.mu.Lock()
	defer b.mu.Unlock()

	tab := model.Tab{ID: b.nextID, Index: len(b.state.Tabs()), Title: title, URL: url}
	b.nextID++
	b.state.InsertTab(tab)
	b.emit(host.Event{Type: host.EventCreated, Tab: tab})
	return tab
}

// CloseTab removes a tab.
func (b *Browser) CloseTab(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.state.RemoveTab(id) {
		return false
	}
	b.emit(host.Event{Type: host.EventRemoved, TabID: id})
	return true
}

// Rename changes a tab's title.
func (b *Browser) Rename(id int, title string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	tab, ok := b.state.TabByID(id)
	if !ok {
		return false
	}
	tab.Title = title
	b.state.UpsertTab(tab)
	b.emit(host.Event{Type: host.EventUpdated, Tab: tab})
	return true
}

// FailWith makes every following command return err. Pass nil to recover.
func (b *Browser) FailWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failWith = err
}

// Tabs returns the browser's tabs ordered by index.
func (b *Browser) Tabs() []model.Tab {
	b.mu.Lock()
	defer b.mu.Unlock()
	return selector.Sort(b.state.Tabs())
}

// Active returns the last activated tab ID, or 0.
func (b *Browser) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Calls returns the commands received so far.
func (b *Browser) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

// emit must be called with mu held.
func (b *Browser) emit(ev host.Event) {
	if b.closed {
		return
	}
	select {
	case b.events <- ev:
	default:
		// Nobody is draining; the next snapshot will resync consumers.
	}
}

var _ host.Host = (*Browser)(nil)
