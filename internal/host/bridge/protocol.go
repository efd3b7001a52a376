package bridge

import (
	"fmt"

	"github.com/nikbrunner/tabs/internal/host"
	"github.com/nikbrunner/tabs/internal/model"
)

// Inbound is a message sent by the extension: either a tab event or the
// response to a command.
type Inbound struct {
	Type  string      `json:"type,omitempty"`
	Tabs  []model.Tab `json:"tabs,omitempty"`
	Tab   *model.Tab  `json:"tab,omitempty"`
	TabID int         `json:"tabId,omitempty"`

	ID    string `json:"id,omitempty"`
	OK    *bool  `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}

// Outbound is a command sent to the extension.
type Outbound struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	TabID  int    `json:"tabId"`
	Index  *int   `json:"index,omitempty"`
}

const (
	actionFocus = "focus"
	actionMove  = "move"
)

func (m Inbound) isResponse() bool {
	return m.ID != "" && m.OK != nil
}

// event converts a tab message into a host event.
func (m Inbound) event() (host.Event, error) {
	switch m.Type {
	case "snapshot":
		tabs := m.Tabs
		if tabs == nil {
			tabs = []model.Tab{}
		}
		return host.Event{Type: host.EventSnapshot, Tabs: tabs}, nil
	case "tab.removed":
		return host.Event{Type: host.EventRemoved, TabID: m.TabID}, nil
	case "tab.created", "tab.updated", "tab.moved":
		if m.Tab == nil {
			return host.Event{}, fmt.Errorf("%s without tab", m.Type)
		}
		ev := host.Event{Tab: *m.Tab}
		switch m.Type {
		case "tab.created":
			ev.Type = host.EventCreated
		case "tab.updated":
			ev.Type = host.EventUpdated
		default:
			ev.Type = host.EventMoved
		}
		return ev, nil
	}
	return host.Event{}, fmt.Errorf("unknown message type %q", m.Type)
}
