package model

import (
	"slices"
	"sort"
)

// Change identifies which part of the State a mutation touched.
type Change int

const (
	ChangeTabs Change = iota
	ChangeQuery
	ChangeMode
	ChangeHighlight
	ChangeSelection
	ChangeListView
)

func (c Change) String() string {
	switch c {
	case ChangeTabs:
		return "tabs"
	case ChangeQuery:
		return "query"
	case ChangeMode:
		return "mode"
	case ChangeHighlight:
		return "highlight"
	case ChangeSelection:
		return "selection"
	case ChangeListView:
		return "listView"
	}
	return "unknown"
}

// Observer is notified after every effective mutation of a State.
type Observer func(Change)

// State holds the mirrored tab list plus the UI state around it.
//
// A State is owned by a single event loop and is not safe for concurrent use.
type State struct {
	tabs     []Tab
	version  uint64
	query    string
	mode     Mode
	listView ListView

	highlightedID  int
	hasHighlighted bool

	selected map[int]struct{}

	observers []*Observer
}

// NewState creates an empty State in default mode.
func NewState() *State {
	return &State{
		tabs:     []Tab{},
		selected: make(map[int]struct{}),
	}
}

// Subscribe registers an observer and returns a function that removes it.
func (s *State) Subscribe(fn Observer) func() {
	o := &fn
	s.observers = append(s.observers, o)
	return func() {
		for i, existing := range s.observers {
			if existing == o {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *State) notify(c Change) {
	// Copy so observers may unsubscribe while being notified.
	observers := slices.Clone(s.observers)
	for _, o := range observers {
		(*o)(c)
	}
}

func (s *State) tabsChanged() {
	s.version++
	s.notify(ChangeTabs)
}

// Version increments on every change to the tab list.
func (s *State) Version() uint64 {
	return s.version
}

// Tabs returns a copy of all known tabs in mirror order.
func (s *State) Tabs() []Tab {
	return slices.Clone(s.tabs)
}

// SetTabs replaces the whole mirror, e.g. from a host snapshot.
// Selected ids that no longer exist are dropped.
func (s *State) SetTabs(tabs []Tab) {
	s.tabs = slices.Clone(tabs)
	if s.tabs == nil {
		s.tabs = []Tab{}
	}
	s.pruneSelection()
	s.tabsChanged()
}

// TabByID finds a tab by ID.
func (s *State) TabByID(id int) (Tab, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Tab{}, false
	}
	return s.tabs[i], true
}

// UpsertTab replaces the tab with the same ID or appends it as-is.
func (s *State) UpsertTab(t Tab) {
	if i := s.indexOf(t.ID); i >= 0 {
		if s.tabs[i] == t {
			return
		}
		s.tabs[i] = t
	} else {
		s.tabs = append(s.tabs, t)
	}
	s.tabsChanged()
}

// InsertTab adds a new tab at t.Index, shifting the tabs at or after that
// position one slot to the right. An existing tab with the same ID is replaced.
func (s *State) InsertTab(t Tab) {
	if i := s.indexOf(t.ID); i >= 0 {
		s.dropAt(i)
	}
	for i := range s.tabs {
		if s.tabs[i].Index >= t.Index {
			s.tabs[i].Index++
		}
	}
	s.tabs = append(s.tabs, t)
	s.tabsChanged()
}

// RemoveTab drops a tab and closes the gap it leaves in the window order.
// It reports whether the tab was known.
func (s *State) RemoveTab(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.dropAt(i)
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		s.notify(ChangeSelection)
	}
	s.tabsChanged()
	return true
}

// dropAt removes the tab at slice position i and closes its gap in the
// window order.
func (s *State) dropAt(i int) {
	removed := s.tabs[i]
	s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
	for j := range s.tabs {
		if s.tabs[j].Index > removed.Index {
			s.tabs[j].Index--
		}
	}
}

// MoveTab moves a tab to newIndex and renumbers every tab to its position in
// the resulting order. newIndex is clamped to the window bounds.
func (s *State) MoveTab(id, newIndex int) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	order := slices.Clone(s.tabs)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Index < order[j].Index })

	from := slices.IndexFunc(order, func(t Tab) bool { return t.ID == id })
	moved := order[from]
	order = append(order[:from], order[from+1:]...)

	newIndex = max(0, min(newIndex, len(order)))
	order = slices.Insert(order, newIndex, moved)

	positions := make(map[int]int, len(order))
	for pos, t := range order {
		positions[t.ID] = pos
	}
	changed := false
	for i := range s.tabs {
		pos := positions[s.tabs[i].ID]
		if s.tabs[i].Index != pos {
			s.tabs[i].Index = pos
			changed = true
		}
	}
	if changed {
		s.tabsChanged()
	}
	return true
}

func (s *State) indexOf(id int) int {
	return slices.IndexFunc(s.tabs, func(t Tab) bool { return t.ID == id })
}

// Query returns the raw search query as typed.
func (s *State) Query() string {
	return s.query
}

// SetQuery replaces the search query.
func (s *State) SetQuery(q string) {
	if s.query == q {
		return
	}
	s.query = q
	s.notify(ChangeQuery)
}

// Mode returns the current input mode.
func (s *State) Mode() Mode {
	return s.mode
}

// SetMode switches the input mode.
func (s *State) SetMode(m Mode) {
	if s.mode == m {
		return
	}
	s.mode = m
	s.notify(ChangeMode)
}

// ListView returns the current layout.
func (s *State) ListView() ListView {
	return s.listView
}

// SetListView switches the layout.
func (s *State) SetListView(v ListView) {
	if s.listView == v {
		return
	}
	s.listView = v
	s.notify(ChangeListView)
}

// HighlightedTabID returns the tab under the keyboard cursor, if any.
// The ID is not guaranteed to still exist in the mirror.
func (s *State) HighlightedTabID() (int, bool) {
	return s.highlightedID, s.hasHighlighted
}

// SetHighlightedTabID moves the keyboard cursor to id.
func (s *State) SetHighlightedTabID(id int) {
	if s.hasHighlighted && s.highlightedID == id {
		return
	}
	s.highlightedID = id
	s.hasHighlighted = true
	s.notify(ChangeHighlight)
}

// ClearHighlight unsets the keyboard cursor.
func (s *State) ClearHighlight() {
	if !s.hasHighlighted {
		return
	}
	s.highlightedID = 0
	s.hasHighlighted = false
	s.notify(ChangeHighlight)
}

// SelectTab adds id to the selection. Selecting twice is a no-op.
func (s *State) SelectTab(id int) {
	if _, ok := s.selected[id]; ok {
		return
	}
	s.selected[id] = struct{}{}
	s.notify(ChangeSelection)
}

// DeselectTab removes id from the selection. Deselecting an unselected id is a no-op.
func (s *State) DeselectTab(id int) {
	if _, ok := s.selected[id]; !ok {
		return
	}
	delete(s.selected, id)
	s.notify(ChangeSelection)
}

// ToggleSelected flips the selection state of id.
func (s *State) ToggleSelected(id int) {
	if s.IsSelected(id) {
		s.DeselectTab(id)
	} else {
		s.SelectTab(id)
	}
}

// IsSelected returns true if id is selected.
func (s *State) IsSelected(id int) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectedTabIDs returns the selected ids in ascending order.
func (s *State) SelectedTabIDs() []int {
	ids := make([]int, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ClearSelection empties the selection.
func (s *State) ClearSelection() {
	if len(s.selected) == 0 {
		return
	}
	s.selected = make(map[int]struct{})
	s.notify(ChangeSelection)
}

// pruneSelection drops selected ids that are not in the mirror anymore.
func (s *State) pruneSelection() {
	pruned := false
	for id := range s.selected {
		if s.indexOf(id) < 0 {
			delete(s.selected, id)
			pruned = true
		}
	}
	if pruned {
		s.notify(ChangeSelection)
	}
}
