package seo

// OpenGraph carries og:* tags.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

// Twitter carries twitter:* card tags.
type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is one hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}

// Meta is everything the base layout renders into <head>.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}

// AddJSONLD appends a marshalled schema payload, skipping values that fail to encode.
func (m *Meta) AddJSONLD(v any) {
	if s := JSON(v); s != "" {
		m.JSONLD = append(m.JSONLD, s)
	}
}
