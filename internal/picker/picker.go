// Package picker is a small TUI for choosing one of several quick-jump hits.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/tabs/internal/keyboard"
	"github.com/nikbrunner/tabs/internal/model"
	"github.com/nikbrunner/tabs/internal/search"
	"github.com/nikbrunner/tabs/internal/tui/layout"
)

// rowHeight is the number of lines one result takes: title and URL.
const rowHeight = 2

var (
	accent = lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	subtle = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}

	headerStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	rowStyle    = lipgloss.NewStyle()
	cursorStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	matchStyle  = lipgloss.NewStyle().Underline(true).Bold(true)
	urlStyle    = lipgloss.NewStyle().Foreground(subtle)
	footerStyle = lipgloss.NewStyle().Foreground(subtle)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "ctrl+n")),
	Choose: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c", "q")),
}

// Picker lists ranked results and reports the one the user chose.
type Picker struct {
	results []search.Result
	tabs    []model.Tab // results' tabs, for navigation
	query   string

	cursor    int
	chosen    bool
	cancelled bool

	text   layout.TextConfig
	width  int
	height int
}

// New creates a Picker over results with the first one highlighted.
func New(results []search.Result, query string) Picker {
	tabs := make([]model.Tab, len(results))
	for i, r := range results {
		tabs[i] = r.Tab
	}
	return Picker{
		results: results,
		tabs:    tabs,
		query:   query,
		text:    layout.DefaultConfig().Text,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.cancelled = true
			return p, tea.Quit
		case key.Matches(msg, keys.Choose):
			p.chosen = len(p.results) > 0
			return p, tea.Quit
		case key.Matches(msg, keys.Up):
			p.move(keyboard.NavigateUp)
		case key.Matches(msg, keys.Down):
			p.move(keyboard.NavigateDown)
		}
	}
	return p, nil
}

// move steps the cursor with the same wrap-around rules as the tab list.
func (p *Picker) move(step func([]model.Tab, int, bool) (int, bool)) {
	if len(p.tabs) == 0 {
		return
	}
	id, ok := step(p.tabs, p.tabs[p.cursor].ID, true)
	if !ok {
		return
	}
	for i, t := range p.tabs {
		if t.ID == id {
			p.cursor = i
			return
		}
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(fmt.Sprintf("%d tabs match %q", len(p.results), p.query)))

	visibleRows := max(1, (p.height-4)/rowHeight)
	offset := layout.CalculateViewportOffset(p.cursor, len(p.results), visibleRows)
	width := max(1, p.width-4)

	for i := offset; i < len(p.results) && i < offset+visibleRows; i++ {
		r := p.results[i]
		marker, style := "  ", rowStyle
		if i == p.cursor {
			marker, style = "> ", cursorStyle
		}

		title, titleCut := layout.TruncateText(r.Tab.DisplayTitle(), width, p.text)
		url, urlCut := layout.TruncateText(r.Tab.URL, width, p.text)

		// Match offsets are only valid for the untruncated string.
		if r.Field == search.FieldTitle && !titleCut {
			title = highlight(title, r.MatchedIndexes, style)
		} else {
			title = style.Render(title)
		}
		if r.Field == search.FieldURL && !urlCut {
			url = highlight(url, r.MatchedIndexes, urlStyle)
		} else {
			url = urlStyle.Render(url)
		}

		fmt.Fprintf(&b, "%s%s\n  %s\n", marker, title, url)
	}

	b.WriteString("\n" + footerStyle.Render("↑/↓ move  enter switch  esc cancel"))
	return b.String()
}

// highlight renders s with the runes at the matched byte offsets emphasised.
func highlight(s string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(s)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(matchStyle.Inherit(base).Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedTab returns the chosen tab. ok is false if the user cancelled.
func (p Picker) SelectedTab() (model.Tab, bool) {
	if !p.chosen || p.cancelled {
		return model.Tab{}, false
	}
	return p.results[p.cursor].Tab, true
}

// Cancelled reports whether the picker was dismissed without a choice.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
