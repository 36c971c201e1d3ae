package catalog

import (
	"net/url"
	"strings"
)

// Dimension names one filterable product attribute. Its value is also the query parameter key.
type Dimension string

const (
	DimSize        Dimension = "sizes"
	DimResolution  Dimension = "resolutions"
	DimApplication Dimension = "application"
)

// Dimensions lists every filter dimension in query-string order.
var Dimensions = []Dimension{DimSize, DimResolution, DimApplication}

// Selection is the active filter state. Each dimension is an ordered set: insertion order is
// kept for rendering chips and the query string, matching ignores it.
type Selection struct {
	Sizes        []string
	Resolutions  []string
	Applications []string
}

// ParseSelection reads a selection from query values. Each dimension is a comma-separated
// list; empty tokens are dropped and repeated tokens collapse to their first occurrence.
// Tokens are kept verbatim, whitespace included, and are not checked against the catalog
// enumerations.
func ParseSelection(q url.Values) Selection {
	return Selection{
		Sizes:        splitParam(q, DimSize),
		Resolutions:  splitParam(q, DimResolution),
		Applications: splitParam(q, DimApplication),
	}
}

func splitParam(q url.Values, dim Dimension) []string {
	var out []string
	for _, raw := range q[string(dim)] {
		for _, tok := range strings.Split(raw, ",") {
			if tok == "" || contains(out, tok) {
				continue
			}
			out = append(out, tok)
		}
	}
	return out
}

// Values returns the selection as query values. Empty dimensions are omitted entirely.
func (s Selection) Values() url.Values {
	q := url.Values{}
	for _, dim := range Dimensions {
		if vals := s.Get(dim); len(vals) > 0 {
			q.Set(string(dim), strings.Join(vals, ","))
		}
	}
	return q
}

// Encode renders the selection as a query string without the leading "?".
func (s Selection) Encode() string {
	return s.Values().Encode()
}

// URL returns path with the encoded selection appended.
func (s Selection) URL(path string) string {
	if enc := s.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// Get returns the values selected for dim.
func (s Selection) Get(dim Dimension) []string {
	switch dim {
	case DimSize:
		return s.Sizes
	case DimResolution:
		return s.Resolutions
	case DimApplication:
		return s.Applications
	}
	return nil
}

// IsEmpty reports whether no dimension has a selected value.
func (s Selection) IsEmpty() bool {
	return s.Count() == 0
}

// Count returns the total number of selected values across dimensions.
func (s Selection) Count() int {
	return len(s.Sizes) + len(s.Resolutions) + len(s.Applications)
}

// Has reports whether value is selected in dim.
func (s Selection) Has(dim Dimension, value string) bool {
	return contains(s.Get(dim), value)
}

// Toggle removes value from dim if present, otherwise appends it.
func (s *Selection) Toggle(dim Dimension, value string) {
	var target *[]string
	switch dim {
	case DimSize:
		target = &s.Sizes
	case DimResolution:
		target = &s.Resolutions
	case DimApplication:
		target = &s.Applications
	default:
		return
	}
	if idx := indexOf(*target, value); idx >= 0 {
		next := make([]string, 0, len(*target)-1)
		next = append(next, (*target)[:idx]...)
		next = append(next, (*target)[idx+1:]...)
		*target = next
		return
	}
	*target = append(append([]string(nil), *target...), value)
}

// Toggled returns a copy of s with value toggled in dim. s is left untouched.
func (s Selection) Toggled(dim Dimension, value string) Selection {
	next := s.Clone()
	next.Toggle(dim, value)
	return next
}

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	return Selection{
		Sizes:        cloneStrings(s.Sizes),
		Resolutions:  cloneStrings(s.Resolutions),
		Applications: cloneStrings(s.Applications),
	}
}

// Clear returns the empty selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// Matches reports whether p passes every non-empty dimension. Values within a dimension are
// OR'd and dimensions are AND'd.
func (s Selection) Matches(p Product) bool {
	if len(s.Sizes) > 0 && !contains(s.Sizes, p.Size) {
		return false
	}
	if len(s.Resolutions) > 0 && !contains(s.Resolutions, p.Resolution) {
		return false
	}
	if len(s.Applications) > 0 && !contains(s.Applications, p.Application) {
		return false
	}
	return true
}

// Filter returns the products matching sel, in input order.
func Filter(products []Product, sel Selection) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if sel.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	return indexOf(list, v) >= 0
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}
