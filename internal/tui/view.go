package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/tabs/internal/model"
	"github.com/nikbrunner/tabs/internal/tui/layout"
)

// renderView creates the complete screen.
func (a App) renderView() string {
	visible := a.sel.VisibleTabs(a.state)

	var body string
	if a.state.ListView() == model.ListViewGrid {
		body = a.renderGrid(visible)
	} else {
		body = a.renderList(visible)
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderHeader(len(visible)),
			"",
			body,
			a.renderMessage(),
			layout.TruncateANSIAware(a.renderHints(a.getContextualHints()),
				layout.CalculateItemWidth(a.width, a.layoutConfig.List), a.layoutConfig.Text),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders "title  query  visible/total".
func (a App) renderHeader(visible int) string {
	left := a.styles.Title.Render(a.title) + "  "
	if a.state.Mode() == model.ModeSearch {
		left += a.input.View()
	} else if q := a.state.Query(); q != "" {
		left += a.styles.Prompt.Render(q)
	} else {
		left += a.styles.Prompt.Render("type to search")
	}

	count := fmt.Sprintf("%d/%d", visible, a.sel.NumTabs(a.state))
	if n := len(a.state.SelectedTabIDs()); n > 0 {
		count = fmt.Sprintf("%d selected  %s", n, count)
	}
	right := a.styles.Count.Render(count)

	width := layout.CalculateItemWidth(a.width, a.layoutConfig.List)
	gap := width - layout.VisibleLength(left) - layout.VisibleLength(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// cursorPosition returns the index of the highlighted tab in visible, or -1.
func (a App) cursorPosition(visible []model.Tab) int {
	id, ok := a.state.HighlightedTabID()
	if !ok {
		return -1
	}
	return slices.IndexFunc(visible, func(t model.Tab) bool { return t.ID == id })
}

func (a App) renderEmpty() string {
	if a.sel.NumTabs(a.state) == 0 {
		if !a.connected && a.events != nil {
			return a.styles.Empty.Render("(waiting for the browser)")
		}
		return a.styles.Empty.Render("(no tabs)")
	}
	return a.styles.Empty.Render(fmt.Sprintf("(no tabs match %q)", a.state.Query()))
}

// renderList renders one tab per row: marker, title, URL.
func (a App) renderList(visible []model.Tab) string {
	height := layout.CalculateListHeight(a.height, a.layoutConfig.List)
	if len(visible) == 0 {
		return lipgloss.NewStyle().Height(height).Render(a.renderEmpty())
	}

	itemWidth := layout.CalculateItemWidth(a.width, a.layoutConfig.List)
	// Marker column: "● " or "  "
	titleWidth, urlWidth := layout.CalculateColumnWidths(itemWidth-2, a.layoutConfig.List)

	cursor := a.cursorPosition(visible)
	offset := layout.CalculateViewportOffset(max(cursor, 0), len(visible), height)

	var rows []string
	for i := offset; i < len(visible) && i < offset+height; i++ {
		t := visible[i]

		marker := "  "
		if a.state.IsSelected(t.ID) {
			marker = "● "
		}
		title, _ := layout.TruncateText(t.DisplayTitle(), titleWidth, a.layoutConfig.Text)
		url, _ := layout.TruncateText(t.URL, urlWidth, a.layoutConfig.Text)
		title = layout.PadRight(title, titleWidth)

		if i == cursor {
			line := layout.PadRight(marker+title+" "+url, itemWidth)
			rows = append(rows, a.styles.ItemCursor.Render(line))
			continue
		}
		rows = append(rows,
			a.styles.Marker.Render(marker)+a.styles.Item.Render(title)+" "+a.styles.URL.Render(url))
	}

	return lipgloss.NewStyle().Height(height).Render(strings.Join(rows, "\n"))
}

// renderGrid renders tabs as fixed-width cells, row by row.
func (a App) renderGrid(visible []model.Tab) string {
	height := layout.CalculateListHeight(a.height, a.layoutConfig.List)
	if len(visible) == 0 {
		return lipgloss.NewStyle().Height(height).Render(a.renderEmpty())
	}

	itemWidth := layout.CalculateItemWidth(a.width, a.layoutConfig.List)
	cfg := a.layoutConfig.Grid
	cols := layout.CalculateGridColumns(itemWidth, cfg)
	totalRows := (len(visible) + cols - 1) / cols

	cursor := a.cursorPosition(visible)
	cursorRow := 0
	if cursor >= 0 {
		cursorRow = cursor / cols
	}
	offset := layout.CalculateViewportOffset(cursorRow, totalRows, height)

	gap := strings.Repeat(" ", cfg.Gap)
	var rows []string
	for r := offset; r < totalRows && r < offset+height; r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(visible) {
				break
			}
			t := visible[i]

			marker := "  "
			if a.state.IsSelected(t.ID) {
				marker = "● "
			}
			text, _ := layout.TruncateWithPrefixSuffix(t.DisplayTitle(), cfg.CellWidth, marker, "", a.layoutConfig.Text)
			text = layout.PadRight(text, cfg.CellWidth)

			if i == cursor {
				cells = append(cells, a.styles.CellCursor.Render(text))
			} else {
				cells = append(cells, a.styles.Cell.Render(text))
			}
		}
		rows = append(rows, strings.Join(cells, gap))
	}

	return lipgloss.NewStyle().Height(height).Render(strings.Join(rows, "\n"))
}

func (a App) renderMessage() string {
	if a.message == "" {
		return ""
	}
	width := layout.CalculateItemWidth(a.width, a.layoutConfig.List)
	msg, _ := layout.TruncateText(a.message, width, a.layoutConfig.Text)
	if a.isError {
		return a.styles.Error.Render(msg)
	}
	return a.styles.Message.Render(msg)
}
