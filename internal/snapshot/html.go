// Package snapshot reads and writes tab lists on disk.
package snapshot

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nikbrunner/tabs/internal/model"
)

// skippedSchemes are link targets a browser cannot open as a tab.
var skippedSchemes = []string{"javascript:", "place:"}

// ParseHTML reads Netscape bookmark HTML and returns every link as a tab.
// Folders are flattened; tabs are numbered in document order.
func ParseHTML(r io.Reader) ([]model.Tab, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	tabs := []model.Tab{}
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode || n.DataAtom != atom.A {
			continue
		}
		href := strings.TrimSpace(attr(n, "href"))
		if href == "" || hasSkippedScheme(href) {
			continue
		}

		title := text(n)
		if title == "" {
			title = href
		}
		tabs = append(tabs, model.Tab{
			ID:    len(tabs) + 1,
			Index: len(tabs),
			Title: title,
			URL:   href,
		})
	}
	return tabs, nil
}

func hasSkippedScheme(href string) bool {
	lower := strings.ToLower(href)
	for _, s := range skippedSchemes {
		if strings.HasPrefix(lower, s) {
			return true
		}
	}
	return false
}

// text returns the trimmed text below n.
func text(n *html.Node) string {
	var b strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// attr returns the value of an attribute, ignoring case.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
