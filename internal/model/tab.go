package model

// Tab mirrors a browser tab reported by the host.
type Tab struct {
	ID    int    `json:"id"`    // host-assigned, stable for the tab's lifetime
	Index int    `json:"index"` // 0-based position in the window, may change
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DisplayTitle returns the title, falling back to the URL for untitled tabs.
func (t Tab) DisplayTitle() string {
	if t.Title == "" {
		return t.URL
	}
	return t.Title
}
