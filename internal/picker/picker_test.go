package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/tabs/internal/model"
	"github.com/nikbrunner/tabs/internal/search"
)

func gitResults() []search.Result {
	return []search.Result{
		{Tab: model.Tab{ID: 4, Index: 3, Title: "GitHub", URL: "https://github.com"}},
		{Tab: model.Tab{ID: 9, Index: 0, Title: "GitLab", URL: "https://gitlab.com"}},
		{Tab: model.Tab{ID: 2, Index: 5, Title: "Gitea", URL: "https://gitea.io"}},
	}
}

func press(p Picker, msg tea.KeyMsg) (Picker, tea.Cmd) {
	m, cmd := p.Update(msg)
	return m.(Picker), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_MovesAndWraps(t *testing.T) {
	p := New(gitResults(), "git")
	assert.Equal(t, p.cursor, 0)

	tests := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{runes("j"), 1},
		{tea.KeyMsg{Type: tea.KeyDown}, 2},
		{tea.KeyMsg{Type: tea.KeyCtrlN}, 0}, // wraps to first
		{runes("k"), 2},                     // wraps to last
		{tea.KeyMsg{Type: tea.KeyCtrlP}, 1},
	}
	for _, tt := range tests {
		p, _ = press(p, tt.msg)
		assert.Equal(t, p.cursor, tt.want, "after %s", tt.msg)
	}
}

func TestPicker_SingleResultStays(t *testing.T) {
	p := New(gitResults()[:1], "git")

	p, _ = press(p, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, p.cursor, 0)
	p, _ = press(p, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, p.cursor, 0)
}

func TestPicker_Choose(t *testing.T) {
	p := New(gitResults(), "git")
	p, _ = press(p, runes("j"))

	p, cmd := press(p, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Assert(t, cmd != nil)
	tab, ok := p.SelectedTab()
	assert.Assert(t, ok)
	assert.Equal(t, tab.Title, "GitLab")
	assert.Assert(t, !p.Cancelled())
}

func TestPicker_NoChoiceBeforeEnter(t *testing.T) {
	_, ok := New(gitResults(), "git").SelectedTab()
	assert.Assert(t, !ok)

	p, _ := press(New(nil, "git"), tea.KeyMsg{Type: tea.KeyEnter})
	_, ok = p.SelectedTab()
	assert.Assert(t, !ok)
}

func TestPicker_Cancel(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}, runes("q")} {
		p, cmd := press(New(gitResults(), "git"), msg)

		assert.Assert(t, p.Cancelled(), "after %s", msg)
		assert.Assert(t, cmd != nil)
		_, ok := p.SelectedTab()
		assert.Assert(t, !ok)
	}
}

func TestPicker_View(t *testing.T) {
	results := gitResults()
	results[0].MatchedIndexes = []int{0, 1, 2}
	results[1].Field = search.FieldURL
	results[1].MatchedIndexes = []int{8, 9, 10}

	view := ansi.Strip(New(results, "git").View())

	for _, want := range []string{`3 tabs match "git"`, "> GitHub", "  GitLab", "https://gitlab.com"} {
		assert.Assert(t, is.Contains(view, want))
	}
}

func TestPicker_ViewScrollsToCursor(t *testing.T) {
	var results []search.Result
	for i := range 20 {
		results = append(results, search.Result{Tab: model.Tab{ID: i + 1, Index: i, Title: "tab " + strings.Repeat("x", i)}})
	}

	m, _ := New(results, "tab").Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	p := m.(Picker)
	for range 15 {
		p, _ = press(p, tea.KeyMsg{Type: tea.KeyDown})
	}

	view := ansi.Strip(p.View())
	assert.Assert(t, is.Contains(view, "> tab "+strings.Repeat("x", 15)))
	assert.Assert(t, !strings.Contains(view, "  tab \n"))
}
