package host

import (
	"log/slog"

	"github.com/nikbrunner/tabs/internal/model"
)

// Apply mirrors a host event into the state.
func Apply(s *model.State, ev Event) {
	switch ev.Type {
	case EventSnapshot:
		s.SetTabs(ev.Tabs)
	case EventCreated:
		s.InsertTab(ev.Tab)
	case EventRemoved:
		if !s.RemoveTab(ev.TabID) {
			slog.Debug("removed tab was not mirrored", "id", ev.TabID)
		}
	case EventUpdated:
		s.UpsertTab(ev.Tab)
	case EventMoved:
		if _, ok := s.TabByID(ev.Tab.ID); !ok {
			s.InsertTab(ev.Tab)
			return
		}
		s.MoveTab(ev.Tab.ID, ev.Tab.Index)
		if current, _ := s.TabByID(ev.Tab.ID); current.Title != ev.Tab.Title || current.URL != ev.Tab.URL {
			current.Title, current.URL = ev.Tab.Title, ev.Tab.URL
			s.UpsertTab(current)
		}
	case EventDisconnected:
		// The mirror keeps its last known tabs until the next snapshot.
	}
}
