package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound indicates the requested product or solution is not in the catalog.
var ErrNotFound = errors.New("catalog: not found")

//go:embed data/catalog.yaml
var defaultDataset []byte

// Product is one catalog entry describing a physical display unit.
type Product struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Series        string   `yaml:"series" json:"series"`
	Application   string   `yaml:"application" json:"application"`
	Image         string   `yaml:"image" json:"image"`
	Size          string   `yaml:"size" json:"size"`
	Resolution    string   `yaml:"resolution" json:"resolution"`
	TouchType     string   `yaml:"touch_type" json:"touchType,omitempty"`
	TouchPoints   string   `yaml:"touch_points" json:"touchPoints,omitempty"`
	System        string   `yaml:"system" json:"system,omitempty"`
	Brightness    string   `yaml:"brightness" json:"brightness,omitempty"`
	ContrastRatio string   `yaml:"contrast_ratio" json:"contrastRatio,omitempty"`
	AspectRatio   string   `yaml:"aspect_ratio" json:"aspectRatio,omitempty"`
	Features      []string `yaml:"features" json:"features"`
}

// HasFeature reports whether the feature list contains tag exactly.
func (p Product) HasFeature(tag string) bool {
	for _, f := range p.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// Resolution is a selectable resolution value with its display label.
type Resolution struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Solution describes an industry solution shown on the solutions page.
type Solution struct {
	ID                string   `yaml:"id" json:"id"`
	Title             string   `yaml:"title" json:"title"`
	Description       string   `yaml:"description" json:"description"`
	Image             string   `yaml:"image" json:"image"`
	RecommendedSeries []string `yaml:"recommended_series" json:"recommendedSeries"`
	RecommendedSizes  []string `yaml:"recommended_sizes" json:"recommendedSizes"`
	Features          []string `yaml:"features" json:"features"`
}

// Catalog is the immutable product dataset plus its reference enumerations.
type Catalog struct {
	products    []Product
	byID        map[string]int
	sizes       []string
	resolutions []Resolution
	solutions   []Solution
}

type dataset struct {
	Sizes       []string     `yaml:"sizes"`
	Resolutions []Resolution `yaml:"resolutions"`
	Products    []Product    `yaml:"products"`
	Solutions   []Solution   `yaml:"solutions"`
}

// Load decodes a YAML dataset. Product ids must be present and unique.
func Load(r io.Reader) (*Catalog, error) {
	var ds dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog: empty dataset")
		}
		return nil, fmt.Errorf("catalog: decode dataset: %w", err)
	}

	c := &Catalog{
		products:    make([]Product, 0, len(ds.Products)),
		byID:        make(map[string]int, len(ds.Products)),
		sizes:       ds.Sizes,
		resolutions: ds.Resolutions,
		solutions:   ds.Solutions,
	}
	for i, p := range ds.Products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: product #%d has no id", i+1)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// LoadFile reads a YAML dataset from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the dataset embedded in the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultDataset))
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Product looks up a product by id.
func (c *Catalog) Product(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return cloneProduct(c.products[i]), nil
}

// Featured returns the first n products.
func (c *Catalog) Featured(n int) []Product {
	if n < 0 {
		n = 0
	}
	if n > len(c.products) {
		n = len(c.products)
	}
	out := make([]Product, n)
	for i := 0; i < n; i++ {
		out[i] = cloneProduct(c.products[i])
	}
	return out
}

// Sizes returns the size filter options.
func (c *Catalog) Sizes() []string {
	return append([]string(nil), c.sizes...)
}

// Resolutions returns the resolution filter options.
func (c *Catalog) Resolutions() []Resolution {
	return append([]Resolution(nil), c.resolutions...)
}

// ResolutionLabel returns the display label for value, or "" when value is not a known option.
func (c *Catalog) ResolutionLabel(value string) string {
	for _, r := range c.resolutions {
		if r.Value == value {
			return r.Label
		}
	}
	return ""
}

// Applications returns the distinct application categories in catalog order.
func (c *Catalog) Applications() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.products {
		if p.Application == "" {
			continue
		}
		if _, ok := seen[p.Application]; ok {
			continue
		}
		seen[p.Application] = struct{}{}
		out = append(out, p.Application)
	}
	return out
}

// Solutions returns every industry solution.
func (c *Catalog) Solutions() []Solution {
	out := make([]Solution, len(c.solutions))
	for i, s := range c.solutions {
		out[i] = cloneSolution(s)
	}
	return out
}

func cloneProduct(p Product) Product {
	p.Features = append([]string(nil), p.Features...)
	return p
}

func cloneSolution(s Solution) Solution {
	s.RecommendedSeries = append([]string(nil), s.RecommendedSeries...)
	s.RecommendedSizes = append([]string(nil), s.RecommendedSizes...)
	s.Features = append([]string(nil), s.Features...)
	return s
}
