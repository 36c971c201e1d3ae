package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ContentPage represents a localized static page sourced from the CMS or local markdown.
type ContentPage struct {
	Kind      string
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      string
	HTML      template.HTML
	Format    string // "markdown" (default) or "html"
	UpdatedAt time.Time
	SEO       ContentSEO
}

// ContentSEO holds optional metadata overrides for static pages.
type ContentSEO struct {
	Title       string
	Description string
	OGImage     string
}

type contentFrontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Lang      string `yaml:"lang"`
	Format    string `yaml:"format"`
	UpdatedAt string `yaml:"updated_at"`
	SEO       struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		OGImage     string `yaml:"og_image"`
	} `yaml:"seo"`
}

const defaultContentFormat = "markdown"

// GetContentPage fetches a localized static page, consulting the remote CMS when configured,
// otherwise falling back to local markdown. The body is rendered to sanitized HTML.
func (c *Client) GetContentPage(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	kind = strings.TrimSpace(strings.ToLower(kind))
	if kind == "" {
		kind = "pages"
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return ContentPage{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = c.fallback
	}

	cacheKey := strings.Join([]string{kind, lang, slug}, "|")
	if page, ok := c.cached(cacheKey); ok {
		return page, nil
	}

	page, err := c.fetchContentPage(ctx, kind, slug, lang)
	if err != nil {
		return ContentPage{}, err
	}
	if page.HTML, err = RenderBody(page.Body, page.Format); err != nil {
		return ContentPage{}, err
	}
	c.store(cacheKey, page)
	return page, nil
}

func (c *Client) fetchContentPage(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	if c.baseURL != "" {
		page, err := c.fetchContentPageRemote(ctx, kind, slug, lang)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("cms remote fetch failed; using local content",
				zap.String("kind", kind), zap.String("slug", slug), zap.String("lang", lang), zap.Error(err))
		}
	}
	return c.localContentPage(kind, slug, lang)
}

func (c *Client) fetchContentPageRemote(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	endpoint, err := url.JoinPath(c.baseURL, "content", kind, slug)
	if err != nil {
		return ContentPage{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ContentPage{}, err
	}
	q := req.URL.Query()
	q.Set("lang", lang)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return ContentPage{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ContentPage{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return ContentPage{}, fmt.Errorf("cms: content remote status %d", resp.StatusCode)
	}

	var payload struct {
		Kind      string    `json:"kind"`
		Slug      string    `json:"slug"`
		Lang      string    `json:"lang"`
		Title     string    `json:"title"`
		Summary   string    `json:"summary"`
		Body      string    `json:"body"`
		Format    string    `json:"format"`
		UpdatedAt time.Time `json:"updated_at"`
		SEO       struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OGImage     string `json:"og_image"`
		} `json:"seo"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ContentPage{}, fmt.Errorf("cms: decode %s/%s: %w", kind, slug, err)
	}
	if strings.TrimSpace(payload.Body) == "" {
		return ContentPage{}, fmt.Errorf("cms: empty body for %s/%s", kind, slug)
	}
	return ContentPage{
		Kind:      firstNonEmpty(payload.Kind, kind),
		Slug:      firstNonEmpty(payload.Slug, slug),
		Lang:      firstNonEmpty(payload.Lang, lang),
		Title:     payload.Title,
		Summary:   payload.Summary,
		Body:      payload.Body,
		Format:    firstNonEmpty(payload.Format, defaultContentFormat),
		UpdatedAt: payload.UpdatedAt,
		SEO: ContentSEO{
			Title:       payload.SEO.Title,
			Description: payload.SEO.Description,
			OGImage:     payload.SEO.OGImage,
		},
	}, nil
}

// localContentPage tries the requested language, then the fallback language.
func (c *Client) localContentPage(kind, slug, lang string) (ContentPage, error) {
	priority := []string{lang}
	if lang != c.fallback {
		priority = append(priority, c.fallback)
	}
	for _, candidate := range priority {
		page, err := readContentMarkdown(c.contentDir, kind, slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		// For other errors (parse issues), stop early.
		return ContentPage{}, err
	}
	return ContentPage{}, ErrNotFound
}

func readContentMarkdown(contentDir, kind, slug, lang string) (ContentPage, error) {
	file := filepath.Join(contentDir, kind, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ContentPage{}, ErrNotFound
		}
		return ContentPage{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := contentFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return ContentPage{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	page := ContentPage{
		Kind:    kind,
		Slug:    slug,
		Lang:    firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    body,
		Format:  firstNonEmpty(strings.TrimSpace(front.Format), defaultContentFormat),
		SEO: ContentSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	page.UpdatedAt = parseContentDate(front.UpdatedAt)
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02", "2006-1-2"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
