package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, lang, slug, body string) {
	t.Helper()
	path := filepath.Join(dir, "pages", lang)
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, slug+".md"), []byte(body), 0o600))
}

func TestLocalPageRendersMarkdown(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "about", "---\ntitle: Our Mission\nsummary: Why we build displays\nupdated_at: 2024-05-01\n---\n\n## Together\n\nTechnology should **bring people together**.\n\n<script>alert(1)</script>\n")

	c := NewClient("", WithContentDir(dir))
	page, err := c.GetContentPage(context.Background(), "pages", "about", "en")
	require.NoError(t, err)
	require.Equal(t, "Our Mission", page.Title)
	require.Equal(t, "Why we build displays", page.Summary)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), page.UpdatedAt)

	html := string(page.HTML)
	require.Contains(t, html, "<strong>bring people together</strong>")
	require.Contains(t, html, `<h2 id="together">Together</h2>`)
	require.NotContains(t, html, "<script>")
}

func TestLocalPageFallsBackToDefaultLanguage(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "about", "Body in English\n")

	c := NewClient("", WithContentDir(dir), WithFallbackLang("en"))
	page, err := c.GetContentPage(context.Background(), "pages", "about", "zh")
	require.NoError(t, err)
	require.Equal(t, "en", page.Lang)
	require.Equal(t, "About", page.Title, "title falls back to prettified slug")

	_, err = c.GetContentPage(context.Background(), "pages", "missing", "zh")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = c.GetContentPage(context.Background(), "pages", "../secrets", "en")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemotePageWinsAndIsCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/content/pages/about" || r.URL.Query().Get("lang") != "zh" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"关于我们","body":"远程 *内容*"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithContentDir(t.TempDir()))
	for i := 0; i < 3; i++ {
		page, err := c.GetContentPage(context.Background(), "pages", "about", "zh")
		require.NoError(t, err)
		require.Equal(t, "关于我们", page.Title)
		require.True(t, strings.Contains(string(page.HTML), "<em>内容</em>"))
	}
	require.EqualValues(t, 1, hits.Load())

	c.Purge()
	_, err := c.GetContentPage(context.Background(), "pages", "about", "zh")
	require.NoError(t, err)
	require.EqualValues(t, 2, hits.Load())
}

func TestRemoteFailureUsesLocalContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	dir := t.TempDir()
	writePage(t, dir, "en", "about", "---\ntitle: Local\n---\nlocal body\n")

	c := NewClient(srv.URL, WithContentDir(dir), WithCacheTTL(0))
	page, err := c.GetContentPage(context.Background(), "pages", "about", "en")
	require.NoError(t, err)
	require.Equal(t, "Local", page.Title)
}

func TestRenderBodyFormats(t *testing.T) {
	out, err := RenderBody(`<p onclick="x()">hi</p>`, "html")
	require.NoError(t, err)
	require.Equal(t, "<p>hi</p>", string(out))

	_, err = RenderBody("x", "rst")
	require.Error(t, err)
}
