package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"touchsync.io/touchsync-web/internal/format"
	handlersPkg "touchsync.io/touchsync-web/internal/handlers"
	mw "touchsync.io/touchsync-web/internal/middleware"
	"touchsync.io/touchsync-web/internal/nav"
	"touchsync.io/touchsync-web/internal/observability"
	"touchsync.io/touchsync-web/internal/seo"
)

// templateSet holds the parsed tree plus one clone per page with "content" bound to that
// page's template.
type templateSet struct {
	root  *template.Template
	pages map[string]*template.Template
}

const pageTemplatePrefix = "page_"

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
		"join":      strings.Join,
		"lower":     strings.ToLower,
		"fmtNumber": format.FmtNumber,
		"fmtDate":   format.FmtDate,
		// jsonld marks an already marshalled JSON-LD payload as safe script content.
		"jsonld": func(s string) template.JS { return template.JS(s) },
		"add":    func(a, b int) int { return a + b },
		"even":   func(i int) bool { return i%2 == 0 },
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
	}
}

func parseTemplates() (*templateSet, error) {
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	root, err := template.New("_root").Funcs(templateFuncs()).ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	set := &templateSet{root: root, pages: map[string]*template.Template{}}
	for _, t := range root.Templates() {
		name := t.Name()
		if !strings.HasPrefix(name, pageTemplatePrefix) {
			continue
		}
		clone, err := root.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone for %s: %w", name, err)
		}
		if _, err := clone.New("content").Parse(`{{ template "` + name + `" . }}`); err != nil {
			return nil, fmt.Errorf("bind content for %s: %w", name, err)
		}
		set.pages[strings.TrimPrefix(name, pageTemplatePrefix)] = clone
	}
	return set, nil
}

// templates returns the cached set, or a fresh parse in dev mode.
func templates() (*templateSet, error) {
	if devMode {
		return parseTemplates()
	}
	if tmplCache == nil {
		return nil, fmt.Errorf("template not initialized")
	}
	return tmplCache, nil
}

// renderPage executes the base layout with the page_<name> template as content.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	renderPageStatus(w, r, http.StatusOK, name, data)
}

func renderPageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	set, err := templates()
	if err != nil {
		templateError(w, r, "template parse error", err)
		return
	}
	t, ok := set.pages[name]
	if !ok {
		templateError(w, r, "template missing", fmt.Errorf("page %q not found", name))
		return
	}
	var buf strings.Builder
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		templateError(w, r, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

// renderTemplate executes a single named template, used for htmx fragments.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	set, err := templates()
	if err != nil {
		templateError(w, r, "template parse error", err)
		return
	}
	var buf strings.Builder
	if err := set.root.ExecuteTemplate(&buf, name, data); err != nil {
		templateError(w, r, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(buf.String()))
}

func templateError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	if devMode {
		http.Error(w, fmt.Sprintf("%s: %v", msg, err), http.StatusInternalServerError)
		return
	}
	body := "internal server error"
	if rid, ok := mw.RequestID(r.Context()); ok {
		body += " (request " + rid + ")"
	}
	http.Error(w, body, http.StatusInternalServerError)
}

// i18nOrDefault returns the translation for key or def when the key is missing.
func i18nOrDefault(lang, key, def string) string {
	if i18nBundle == nil {
		return def
	}
	if v, ok := i18nBundle.Lookup(lang, key); ok && v != "" {
		return v
	}
	return def
}

func translator(lang string) handlersPkg.Translator {
	return func(key, def string) string { return i18nOrDefault(lang, key, def) }
}

// siteBaseURL returns the configured public origin or one derived from the request.
func siteBaseURL(r *http.Request) string {
	if siteCfg.BaseURL != "" {
		return siteCfg.BaseURL
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// absoluteURL returns the canonical URL of the request without the hl override.
func absoluteURL(r *http.Request) string {
	q := cloneQuery(r.URL.Query())
	q.Del("hl")
	u := siteBaseURL(r) + r.URL.Path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// buildAlternates lists one hreflang link per supported language plus x-default.
func buildAlternates(r *http.Request) []seo.Alternate {
	if i18nBundle == nil {
		return nil
	}
	base := absoluteURL(r)
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	var alts []seo.Alternate
	for _, lang := range i18nBundle.Supported() {
		alts = append(alts, seo.Alternate{Href: base + sep + "hl=" + url.QueryEscape(lang), Hreflang: lang})
	}
	alts = append(alts, seo.Alternate{Href: base, Hreflang: "x-default"})
	return alts
}

func cloneQuery(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// newPageData fills the layout chrome and default SEO for a page. Callers set page
// payloads and may refine SEO afterwards.
func newPageData(r *http.Request, titleKey, titleDef, descKey, descDef string, crumbOverrides ...string) handlersPkg.PageData {
	lang := mw.Lang(r)
	title := i18nOrDefault(lang, titleKey, titleDef)
	desc := i18nOrDefault(lang, descKey, descDef)
	var languages []string
	if i18nBundle != nil {
		languages = i18nBundle.Supported()
	}

	vm := handlersPkg.PageData{
		Title:       title,
		Lang:        lang,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		CTA:         nav.RenderedItem{Href: nav.CTA.Path, LabelKey: nav.CTA.LabelKey},
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path, crumbOverrides...),
		Analytics:   analytics,
		Site:        handlersPkg.BuildSiteInfo(translator(lang), brandName(lang), siteBaseURL(r), time.Now().Year(), languages),
		CSRFToken:   mw.CSRFToken(r),
	}

	brand := vm.Site.Name
	vm.SEO.Title = title + " | " + brand
	if r.URL.Path == "/" {
		vm.SEO.Title = brand + " | " + title
	}
	vm.SEO.Description = desc
	vm.SEO.Canonical = absoluteURL(r)
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = brand
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Description = vm.SEO.Description
	vm.SEO.OG.Type = "website"
	vm.SEO.Twitter.Card = "summary_large_image"
	vm.SEO.Alternates = buildAlternates(r)
	if !siteCfg.IsProduction() {
		vm.SEO.Robots = "noindex, nofollow"
	}
	if len(vm.Breadcrumbs) > 1 {
		vm.SEO.AddJSONLD(breadcrumbJSONLD(r, lang, vm.Breadcrumbs))
	}
	return vm
}

func brandName(lang string) string {
	name := siteCfg.Name
	if name == "" {
		name = "TouchSync"
	}
	return i18nOrDefault(lang, "brand.name", name)
}

func breadcrumbJSONLD(r *http.Request, lang string, crumbs []nav.Crumb) map[string]any {
	base := siteBaseURL(r)
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = i18nOrDefault(lang, c.LabelKey, c.Label)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: base + c.Href})
	}
	return seo.BreadcrumbList(items)
}
