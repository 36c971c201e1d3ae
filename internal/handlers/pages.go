package handlers

import (
	"net/url"

	"touchsync.io/touchsync-web/internal/nav"
	"touchsync.io/touchsync-web/internal/seo"
)

// PageData is a generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics
	Site      SiteInfo
	CSRFToken string

	Path        string
	Nav         []nav.RenderedItem
	CTA         nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Optional per-page view model payloads
	Home      any
	About     any
	Products  any
	Product   any
	Solutions any
	Contact   any
	NotFound  any
}

// Link is a labelled href for footer and card lists.
type Link struct {
	Href  string
	Label string
}

// SiteInfo is the brand and contact block shared by the navbar and footer.
type SiteInfo struct {
	Name          string
	Tagline       string
	Email         string
	Phone         string
	Location      string
	BaseURL       string
	Year          int
	Languages     []string
	ProductLinks  []Link
	SolutionLinks []Link
}

// Footer link targets. Product links pre-filter the catalog by application.
var (
	footerApplications = []struct{ application, key, label string }{
		{"Meeting Room", "footer.products.meeting", "Meeting Room Displays"},
		{"Education", "footer.products.education", "Education Solutions"},
		{"Digital Signage", "footer.products.signage", "Digital Signage"},
		{"Video Wall", "footer.products.videowall", "Video Walls"},
	}
	footerSolutions = []struct{ anchor, key, label string }{
		{"enterprise-meeting", "footer.solutions.enterprise", "Enterprise Meeting"},
		{"smart-classroom", "footer.solutions.classroom", "Smart Classroom"},
		{"retail-display", "footer.solutions.retail", "Retail Display"},
		{"control-center", "footer.solutions.control", "Control Center"},
	}
)

// Translator looks up key and returns def when the key has no translation.
type Translator func(key, def string) string

// BuildSiteInfo assembles the layout chrome for one request.
func BuildSiteInfo(t Translator, name, baseURL string, year int, languages []string) SiteInfo {
	info := SiteInfo{
		Name:      name,
		Tagline:   t("footer.tagline", "Leading provider of interactive display solutions for education, enterprise collaboration, and digital signage worldwide."),
		Email:     "info@szcurve.com",
		Phone:     "+1 (800) 123-4567",
		Location:  t("footer.location", "Shenzhen, China"),
		BaseURL:   baseURL,
		Year:      year,
		Languages: append([]string(nil), languages...),
	}
	for _, fa := range footerApplications {
		q := url.Values{"application": {fa.application}}
		info.ProductLinks = append(info.ProductLinks, Link{Href: "/products?" + q.Encode(), Label: t(fa.key, fa.label)})
	}
	for _, fs := range footerSolutions {
		info.SolutionLinks = append(info.SolutionLinks, Link{Href: "/solutions#" + fs.anchor, Label: t(fs.key, fs.label)})
	}
	return info
}
