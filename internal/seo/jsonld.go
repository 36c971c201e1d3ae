package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// ContactPoint describes how to reach the organization's sales team.
type ContactPoint struct {
	Email string
	Phone string
}

// Organization returns an Organization schema with an optional sales contact point.
func Organization(name, url, logoURL string, contact ContactPoint) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if contact.Email != "" || contact.Phone != "" {
		cp := map[string]any{"@type": "ContactPoint", "contactType": "sales"}
		if contact.Email != "" {
			cp["email"] = contact.Email
		}
		if contact.Phone != "" {
			cp["telephone"] = contact.Phone
		}
		m["contactPoint"] = cp
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// PropertyValue is a name/value pair rendered as additionalProperty.
type PropertyValue struct {
	Name  string
	Value string
}

// ProductInfo is the subset of a catalog product exposed to search engines.
type ProductInfo struct {
	Name        string
	Description string
	URL         string
	Image       string
	SKU         string
	Brand       string
	Category    string
	Properties  []PropertyValue
}

// Product returns a product schema payload.
func Product(p ProductInfo) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        p.Name,
		"description": p.Description,
	}
	if p.URL != "" {
		m["url"] = p.URL
	}
	if p.Image != "" {
		m["image"] = p.Image
	}
	if p.SKU != "" {
		m["sku"] = p.SKU
	}
	if p.Brand != "" {
		m["brand"] = map[string]any{"@type": "Brand", "name": p.Brand}
	}
	if p.Category != "" {
		m["category"] = p.Category
	}
	if len(p.Properties) > 0 {
		props := make([]map[string]any, 0, len(p.Properties))
		for _, pv := range p.Properties {
			props = append(props, map[string]any{"@type": "PropertyValue", "name": pv.Name, "value": pv.Value})
		}
		m["additionalProperty"] = props
	}
	return m
}
