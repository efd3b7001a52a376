// Package selector derives the sorted and filtered tab views from a State.
package selector

import (
	"cmp"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nikbrunner/tabs/internal/model"
)

// DefaultCacheSize is the number of derived views kept per Selector.
const DefaultCacheSize = 32

// Source is the read side of the store the selectors need.
type Source interface {
	Tabs() []model.Tab
	Query() string
	Version() uint64
}

// Sort returns tabs ordered by Index ascending. Ties keep their input order.
// The input slice is not modified.
func Sort(tabs []model.Tab) []model.Tab {
	sorted := slices.Clone(tabs)
	if sorted == nil {
		return []model.Tab{}
	}
	slices.SortStableFunc(sorted, func(a, b model.Tab) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return sorted
}

// Filter keeps the tabs whose title or URL contains query, ignoring case.
// An empty query returns sorted unchanged.
func Filter(sorted []model.Tab, query string) []model.Tab {
	if query == "" {
		return sorted
	}
	q := strings.ToLower(query)
	visible := []model.Tab{}
	for _, t := range sorted {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.URL), q) {
			visible = append(visible, t)
		}
	}
	return visible
}

// SortedTabs computes the sorted view without caching.
func SortedTabs(src Source) []model.Tab {
	return Sort(src.Tabs())
}

// VisibleTabs computes the filtered view without caching.
func VisibleTabs(src Source) []model.Tab {
	return Filter(SortedTabs(src), src.Query())
}

// NumTabs counts all known tabs, ignoring the query.
func NumTabs(src Source) int {
	return len(src.Tabs())
}

type visibleKey struct {
	version uint64
	query   string
}

// Selector memoizes the derived views keyed on the source's tab version and
// the lowered query. A Selector serves a single Source. Returned slices are shared between calls and must not be
// modified by callers.
type Selector struct {
	sorted  *lru.Cache[uint64, []model.Tab]
	visible *lru.Cache[visibleKey, []model.Tab]
}

// New creates a Selector holding up to size entries per view.
func New(size int) *Selector {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size.
	sorted, _ := lru.New[uint64, []model.Tab](size)
	visible, _ := lru.New[visibleKey, []model.Tab](size)
	return &Selector{sorted: sorted, visible: visible}
}

// SortedTabs returns all tabs ordered by Index.
func (s *Selector) SortedTabs(src Source) []model.Tab {
	v := src.Version()
	if tabs, ok := s.sorted.Get(v); ok {
		return tabs
	}
	tabs := SortedTabs(src)
	s.sorted.Add(v, tabs)
	return tabs
}

// VisibleTabs returns the sorted tabs matching the source's query.
func (s *Selector) VisibleTabs(src Source) []model.Tab {
	key := visibleKey{version: src.Version(), query: strings.ToLower(src.Query())}
	if tabs, ok := s.visible.Get(key); ok {
		return tabs
	}
	tabs := Filter(s.SortedTabs(src), key.query)
	s.visible.Add(key, tabs)
	return tabs
}

// NumTabs counts all known tabs.
func (s *Selector) NumTabs(src Source) int {
	return len(s.SortedTabs(src))
}

// Purge drops every cached view.
func (s *Selector) Purge() {
	s.sorted.Purge()
	s.visible.Purge()
}
