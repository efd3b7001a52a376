package model

import "fmt"

// Mode decides whether keystrokes navigate or edit the search query.
type Mode int

const (
	ModeDefault Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	default:
		return "default"
	}
}

// ParseMode parses "default" or "search".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "default", "":
		return ModeDefault, nil
	case "search":
		return ModeSearch, nil
	}
	return ModeDefault, fmt.Errorf("unknown mode %q", s)
}

// ListView is the rendering layout of the tab list.
type ListView int

const (
	ListViewList ListView = iota
	ListViewGrid
)

func (v ListView) String() string {
	switch v {
	case ListViewGrid:
		return "grid"
	default:
		return "list"
	}
}

// Next cycles to the following layout.
func (v ListView) Next() ListView {
	if v == ListViewGrid {
		return ListViewList
	}
	return ListViewGrid
}

// ParseListView parses "list" or "grid".
func ParseListView(s string) (ListView, error) {
	switch s {
	case "list", "":
		return ListViewList, nil
	case "grid":
		return ListViewGrid, nil
	}
	return ListViewList, fmt.Errorf("unknown list view %q", s)
}
