package cdp

import (
	"github.com/chromedp/cdproto/target"

	"github.com/nikbrunner/tabs/internal/model"
)

// idMap hands out stable integer ids for DevTools target ids.
type idMap struct {
	next     int
	byTarget map[target.ID]int
	byID     map[int]target.ID
}

func newIDMap() *idMap {
	return &idMap{
		next:     1,
		byTarget: make(map[target.ID]int),
		byID:     make(map[int]target.ID),
	}
}

func (m *idMap) id(t target.ID) int {
	if id, ok := m.byTarget[t]; ok {
		return id
	}
	id := m.next
	m.next++
	m.byTarget[t] = id
	m.byID[id] = t
	return id
}

func (m *idMap) target(id int) (target.ID, bool) {
	t, ok := m.byID[id]
	return t, ok
}

// tabs converts the page targets in infos to tabs and forgets targets that
// are gone.
func (m *idMap) tabs(infos []*target.Info) []model.Tab {
	tabs := []model.Tab{}
	seen := make(map[target.ID]bool, len(infos))
	for _, info := range infos {
		if info == nil || info.Type != "page" {
			continue
		}
		seen[info.TargetID] = true
		tabs = append(tabs, model.Tab{
			ID:    m.id(info.TargetID),
			Index: len(tabs),
			Title: info.Title,
			URL:   info.URL,
		})
	}
	for t, id := range m.byTarget {
		if !seen[t] {
			delete(m.byTarget, t)
			delete(m.byID, id)
		}
	}
	return tabs
}
