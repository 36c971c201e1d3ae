package cms

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	htmlPolicy = newHTMLPolicy()
)

func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// keep heading anchors generated by the parser
	p.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return p
}

// RenderBody converts a page body to sanitized HTML. Markdown is the default format;
// "html" bodies are only sanitized.
func RenderBody(body, format string) (template.HTML, error) {
	var raw []byte
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "markdown", "md":
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(body), &buf); err != nil {
			return "", fmt.Errorf("cms: render markdown: %w", err)
		}
		raw = buf.Bytes()
	case "html":
		raw = []byte(body)
	default:
		return "", fmt.Errorf("cms: unsupported format %q", format)
	}
	return template.HTML(htmlPolicy.SanitizeBytes(raw)), nil
}
