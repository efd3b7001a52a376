package snapshot_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/tabs/internal/model"
	"github.com/nikbrunner/tabs/internal/snapshot"
)

const bookmarks = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3>Work</H3>
    <DL><p>
        <DT><A HREF="https://mail.example.com" ADD_DATE="1234567890">Mail</A>
        <DT><A HREF="https://docs.example.com"></A>
    </DL><p>
    <DT><A>No link</A>
    <DT><A HREF="https://chat.example.com">Chat</A>
</DL><p>`

func TestParseHTML_FlattensInDocumentOrder(t *testing.T) {
	tabs, err := snapshot.ParseHTML(strings.NewReader(bookmarks))
	assert.NilError(t, err)

	assert.DeepEqual(t, tabs, []model.Tab{
		{ID: 1, Index: 0, Title: "Mail", URL: "https://mail.example.com"},
		{ID: 2, Index: 1, Title: "https://docs.example.com", URL: "https://docs.example.com"},
		{ID: 3, Index: 2, Title: "Chat", URL: "https://chat.example.com"},
	})
}

func TestParseHTML_SkipsUnopenableLinks(t *testing.T) {
	const in = `<DL><p>
    <DT><A HREF="place:sort=8&maxResults=10">Recent</A>
    <DT><A HREF="JavaScript:alert(1)">Bookmarklet</A>
    <DT><A HREF="  https://go.dev  ">Go</A>
</DL>`

	tabs, err := snapshot.ParseHTML(strings.NewReader(in))
	assert.NilError(t, err)
	assert.DeepEqual(t, tabs, []model.Tab{{ID: 1, Index: 0, Title: "Go", URL: "https://go.dev"}})
}

func TestParseHTML_Empty(t *testing.T) {
	tabs, err := snapshot.ParseHTML(strings.NewReader(""))
	assert.NilError(t, err)
	assert.Check(t, tabs != nil)
	assert.Check(t, is.Len(tabs, 0))
}

func TestExportHTML(t *testing.T) {
	out := snapshot.ExportHTML([]model.Tab{
		{ID: 1, Index: 0, Title: "Q&A", URL: "https://example.com/?a=1&b=2"},
		{ID: 2, Index: 1, URL: "https://go.dev"},
	})

	assert.Check(t, strings.HasPrefix(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>"))
	assert.Check(t, is.Contains(out, `<A HREF="https://example.com/?a=1&amp;b=2">Q&amp;A</A>`))
	assert.Check(t, is.Contains(out, `<A HREF="https://go.dev">https://go.dev</A>`))
}

func TestExportHTML_RoundTrip(t *testing.T) {
	in := []model.Tab{
		{ID: 1, Index: 0, Title: "Mail", URL: "https://mail.example.com"},
		{ID: 2, Index: 1, Title: "Docs <beta>", URL: "https://docs.example.com"},
	}

	out, err := snapshot.ParseHTML(strings.NewReader(snapshot.ExportHTML(in)))
	assert.NilError(t, err)
	assert.DeepEqual(t, out, in)
}

func TestLoadJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []model.Tab
	}{
		{
			name:  "array",
			input: `[{"id":4,"index":1,"title":"Docs","url":"d"},{"id":9,"index":0,"title":"Mail","url":"m"}]`,
			want: []model.Tab{
				{ID: 9, Index: 0, Title: "Mail", URL: "m"},
				{ID: 4, Index: 1, Title: "Docs", URL: "d"},
			},
		},
		{
			name:  "snapshot message",
			input: `{"type":"snapshot","tabs":[{"id":2,"index":0,"title":"Chat","url":"c"}]}`,
			want:  []model.Tab{{ID: 2, Index: 0, Title: "Chat", URL: "c"}},
		},
		{
			name:  "missing ids",
			input: `[{"id":3,"title":"A","url":"a"},{"title":"B","url":"b"}]`,
			want: []model.Tab{
				{ID: 3, Index: 0, Title: "A", URL: "a"},
				{ID: 4, Index: 1, Title: "B", URL: "b"},
			},
		},
		{
			name:  "empty",
			input: `[]`,
			want:  []model.Tab{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := snapshot.LoadJSON(strings.NewReader(tt.input))
			assert.NilError(t, err)
			assert.DeepEqual(t, got, tt.want)
		})
	}
}

func TestLoadJSON_Invalid(t *testing.T) {
	_, err := snapshot.LoadJSON(strings.NewReader(`{"tabs":`))
	assert.ErrorContains(t, err, "decode snapshot")

	_, err = snapshot.LoadJSON(strings.NewReader(`nope`))
	assert.ErrorContains(t, err, "decode tabs")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	assert.NilError(t, snapshot.WriteJSON(&buf, nil))
	assert.Equal(t, strings.TrimSpace(buf.String()), "[]")

	buf.Reset()
	tabs := []model.Tab{{ID: 1, Index: 0, Title: "Mail", URL: "m"}}
	assert.NilError(t, snapshot.WriteJSON(&buf, tabs))

	back, err := snapshot.LoadJSON(&buf)
	assert.NilError(t, err)
	assert.DeepEqual(t, back, tabs)
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "tabs.json")
	assert.NilError(t, os.WriteFile(jsonPath, []byte(`[{"id":1,"title":"Mail","url":"m"}]`), 0o644))
	tabs, err := snapshot.Load(jsonPath)
	assert.NilError(t, err)
	assert.Check(t, is.Len(tabs, 1))

	htmlPath := filepath.Join(dir, "bookmarks.HTML")
	assert.NilError(t, os.WriteFile(htmlPath, []byte(bookmarks), 0o644))
	tabs, err = snapshot.Load(htmlPath)
	assert.NilError(t, err)
	assert.Check(t, is.Len(tabs, 3))

	txtPath := filepath.Join(dir, "tabs.txt")
	assert.NilError(t, os.WriteFile(txtPath, nil, 0o644))
	_, err = snapshot.Load(txtPath)
	assert.ErrorContains(t, err, "unsupported snapshot format")

	_, err = snapshot.Load(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "open snapshot")
}
