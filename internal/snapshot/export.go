package snapshot

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/tabs/internal/model"
)

// DefaultExportPath returns ~/Downloads/tabs-export-YYYY-MM-DD.html.
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tabs-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders tabs as a Netscape bookmark file, in the given order.
func ExportHTML(tabs []model.Tab) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Tabs</TITLE>\n")
	b.WriteString("<H1>Tabs</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, t := range tabs {
		fmt.Fprintf(&b,
			"    <DT><A HREF=\"%s\">%s</A>\n",
			html.EscapeString(t.URL),
			html.EscapeString(t.DisplayTitle()),
		)
	}

	b.WriteString("</DL><p>\n")
	return b.String()
}
