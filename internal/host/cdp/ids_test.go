package cdp

import (
	"testing"

	"github.com/chromedp/cdproto/target"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/tabs/internal/model"
)

func info(id, typ, title string) *target.Info {
	return &target.Info{TargetID: target.ID(id), Type: typ, Title: title, URL: "https://" + title + ".example.com"}
}

func TestIDMap_PagesOnly(t *testing.T) {
	m := newIDMap()

	got := m.tabs([]*target.Info{
		info("A", "page", "mail"),
		info("W", "service_worker", "sw"),
		nil,
		info("B", "page", "docs"),
	})

	assert.DeepEqual(t, got, []model.Tab{
		{ID: 1, Index: 0, Title: "mail", URL: "https://mail.example.com"},
		{ID: 2, Index: 1, Title: "docs", URL: "https://docs.example.com"},
	})
}

func TestIDMap_StableAcrossListings(t *testing.T) {
	m := newIDMap()
	m.tabs([]*target.Info{info("A", "page", "mail"), info("B", "page", "docs")})

	got := m.tabs([]*target.Info{info("C", "page", "chat"), info("B", "page", "docs")})

	assert.Equal(t, got[0].ID, 3)
	assert.Equal(t, got[1].ID, 2)
	assert.Equal(t, got[1].Index, 1)

	_, ok := m.target(1)
	assert.Assert(t, !ok, "closed target must be forgotten")
	tid, ok := m.target(2)
	assert.Assert(t, ok)
	assert.Equal(t, tid, target.ID("B"))
}

func TestIDMap_EmptyListing(t *testing.T) {
	got := newIDMap().tabs(nil)
	assert.Assert(t, got != nil)
	assert.Equal(t, len(got), 0)
}
