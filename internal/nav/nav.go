package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/products"
	LabelKey string // i18n key, e.g. "nav.products"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", LabelKey: "nav.home"},
	{Path: "/about", LabelKey: "nav.about"},
	{Path: "/products", LabelKey: "nav.products"},
	{Path: "/solutions", LabelKey: "nav.solutions"},
	{Path: "/contact", LabelKey: "nav.contact"},
}

// CTA is the call-to-action button shown next to the main navigation.
var CTA = Item{Path: "/contact", LabelKey: "nav.get_quote"}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/products" or "/products/..."
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with Home
// - For known top-level sections, use nav label keys
// - For deeper segments, use label when provided via overrides, else a prettified segment
func Breadcrumbs(currentPath string, overrides ...string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return crumbs
	}

	top := "/" + parts[0]
	labelKey := ""
	for _, it := range Main {
		if it.Path == top {
			labelKey = it.LabelKey
			break
		}
	}
	crumbs = append(crumbs, Crumb{Href: top, LabelKey: labelKey, Label: titleFromSegment(parts[0]), Active: len(parts) == 1})

	href := top
	for i := 1; i < len(parts); i++ {
		href = href + "/" + parts[i]
		label := titleFromSegment(parts[i])
		if i-1 < len(overrides) && overrides[i-1] != "" {
			label = overrides[i-1]
		}
		crumbs = append(crumbs, Crumb{
			Href:   href,
			Label:  label,
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	// replace hyphens/underscores with spaces and capitalize first letter
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
