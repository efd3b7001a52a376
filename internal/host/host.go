// Package host defines the boundary to the browser that owns the tabs.
package host

import (
	"context"
	"errors"

	"github.com/nikbrunner/tabs/internal/model"
)

var (
	// ErrNotConnected is returned when no browser is attached to the host.
	ErrNotConnected = errors.New("host not connected")
	// ErrUnsupported is returned for commands a host cannot carry out.
	ErrUnsupported = errors.New("not supported by host")
	// ErrTabNotFound is returned when the host does not know the tab.
	ErrTabNotFound = errors.New("tab not found")
)

// Controller sends tab commands to the browser.
type Controller interface {
	// Activate focuses the tab.
	Activate(ctx context.Context, id int) error
	// Move places the tab at index within its window.
	Move(ctx context.Context, id, index int) error
}

// Host is a browser connection: commands plus a stream of tab events.
type Host interface {
	Controller
	// Events delivers tab changes. The channel is closed by Close.
	Events() <-chan Event
	Close() error
}

// EventType names a tab change reported by the browser.
type EventType int

const (
	EventSnapshot EventType = iota
	EventCreated
	EventRemoved
	EventUpdated
	EventMoved
	EventDisconnected
)

func (t EventType) String() string {
	switch t {
	case EventSnapshot:
		return "snapshot"
	case EventCreated:
		return "tab.created"
	case EventRemoved:
		return "tab.removed"
	case EventUpdated:
		return "tab.updated"
	case EventMoved:
		return "tab.moved"
	case EventDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Event is a single change notification.
type Event struct {
	Type  EventType
	Tabs  []model.Tab // EventSnapshot
	Tab   model.Tab   // EventCreated, EventUpdated, EventMoved
	TabID int         // EventRemoved
}
