package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nikbrunner/tabs/internal/model"
)

// LoadJSON reads a tab list. Both a bare array and the bridge's
// {"tabs": [...]} snapshot message are accepted. Tabs without an id get a
// fresh one and indices are renumbered to 0..n-1 in index order.
func LoadJSON(r io.Reader) ([]model.Tab, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var tabs []model.Tab
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Tabs []model.Tab `json:"tabs"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		tabs = wrapper.Tabs
	} else if err := json.Unmarshal(data, &tabs); err != nil {
		return nil, fmt.Errorf("decode tabs: %w", err)
	}

	return normalize(tabs), nil
}

func normalize(tabs []model.Tab) []model.Tab {
	out := slices.Clone(tabs)
	if out == nil {
		out = []model.Tab{}
	}
	slices.SortStableFunc(out, func(a, b model.Tab) int { return a.Index - b.Index })

	next := 1
	for _, t := range out {
		next = max(next, t.ID+1)
	}
	for i := range out {
		out[i].Index = i
		if out[i].ID == 0 {
			out[i].ID = next
			next++
		}
	}
	return out
}

// WriteJSON writes tabs as an indented JSON array.
func WriteJSON(w io.Writer, tabs []model.Tab) error {
	if tabs == nil {
		tabs = []model.Tab{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tabs)
}

// Load reads a snapshot file, picking the format from its extension.
func Load(path string) ([]model.Tab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var tabs []model.Tab
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		tabs, err = LoadJSON(f)
	case ".html", ".htm":
		tabs, err = ParseHTML(f)
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tabs, nil
}
