package search

import (
	"testing"

	"github.com/nikbrunner/tabs/internal/model"
)

func tabs(titles ...string) []model.Tab {
	out := make([]model.Tab, 0, len(titles)/2)
	for i := 0; i+1 < len(titles); i += 2 {
		out = append(out, model.Tab{ID: i/2 + 1, Index: i / 2, Title: titles[i], URL: titles[i+1]})
	}
	return out
}

func TestFuzzySearchTabs_EmptyQuery(t *testing.T) {
	results := FuzzySearchTabs(tabs("GitHub", "https://github.com"), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchTabs_ExactMatch(t *testing.T) {
	results := FuzzySearchTabs(tabs(
		"GitHub", "https://github.com",
		"GitLab", "https://gitlab.com",
	), "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Tab.Title != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Tab.Title)
	}
	if results[0].Field != FieldTitle {
		t.Errorf("expected a title match, got %v", results[0].Field)
	}
}

func TestFuzzySearchTabs_FuzzyMatch(t *testing.T) {
	results := FuzzySearchTabs(tabs(
		"TanStack Router", "https://tanstack.com/router",
		"React Router", "https://reactrouter.com",
	), "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Tab.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Tab.Title)
	}
}

func TestFuzzySearchTabs_NoMatch(t *testing.T) {
	results := FuzzySearchTabs(tabs("GitHub", "https://github.com"), "xyz123")

	if len(results) != 0 {
		t.Errorf("expected 0 results for 'xyz123', got %d", len(results))
	}
}

func TestFuzzySearchTabs_CaseInsensitive(t *testing.T) {
	results := FuzzySearchTabs(tabs("GitHub", "https://github.com"), "github")

	if len(results) != 1 {
		t.Fatalf("expected 1 result for case-insensitive match, got %d", len(results))
	}
}

func TestFuzzySearchTabs_SortedByScore(t *testing.T) {
	results := FuzzySearchTabs(tabs(
		"React Router Documentation", "https://reactrouter.com",
		"Router", "https://router.example.com",
	), "router")

	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(results))
	}
	if results[0].Tab.Title != "Router" {
		t.Errorf("expected 'Router' as first result (exact match), got %s", results[0].Tab.Title)
	}
}

func TestFuzzySearchTabs_URLFallback(t *testing.T) {
	results := FuzzySearchTabs(tabs(
		"Inbox (3)", "https://mail.example.com",
		"Mailing lists", "https://lists.example.org",
	), "mail")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Tab.Title != "Mailing lists" || results[0].Field != FieldTitle {
		t.Errorf("expected title hit first, got %+v", results[0])
	}
	if results[1].Tab.Title != "Inbox (3)" || results[1].Field != FieldURL {
		t.Errorf("expected URL hit second, got %+v", results[1])
	}
}

func TestFuzzySearchTabs_UntitledTabMatchesURL(t *testing.T) {
	results := FuzzySearchTabs(tabs("", "https://go.dev"), "godev")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Field != FieldTitle {
		t.Errorf("untitled tabs display their URL and should match as title, got %v", results[0].Field)
	}
}
