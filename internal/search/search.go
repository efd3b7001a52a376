// Package search ranks tabs against a query for quick jumping.
package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/tabs/internal/model"
)

// Field tells which part of a tab a result matched.
type Field int

const (
	FieldTitle Field = iota
	FieldURL
)

// Result represents a fuzzy search match.
type Result struct {
	Tab            model.Tab
	Field          Field
	MatchedIndexes []int
	Score          int
}

// tabTitles implements fuzzy.Source over tab titles.
type tabTitles []model.Tab

func (t tabTitles) String(i int) string { return t[i].DisplayTitle() }
func (t tabTitles) Len() int            { return len(t) }

// tabURLs implements fuzzy.Source over tab URLs.
type tabURLs []model.Tab

func (t tabURLs) String(i int) string { return t[i].URL }
func (t tabURLs) Len() int            { return len(t) }

// FuzzySearchTabs matches query against tab titles, then against the URLs of
// the tabs whose title did not match. Title hits come first, each group
// sorted by score (best first).
func FuzzySearchTabs(tabs []model.Tab, query string) []Result {
	if query == "" {
		return nil
	}

	var results []Result
	matched := make(map[int]bool)

	for _, m := range fuzzy.FindFrom(query, tabTitles(tabs)) {
		matched[m.Index] = true
		results = append(results, Result{
			Tab:            tabs[m.Index],
			Field:          FieldTitle,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}

	for _, m := range fuzzy.FindFrom(query, tabURLs(tabs)) {
		if matched[m.Index] {
			continue
		}
		results = append(results, Result{
			Tab:            tabs[m.Index],
			Field:          FieldURL,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}

	return results
}
