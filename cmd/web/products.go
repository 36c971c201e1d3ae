package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"touchsync.io/touchsync-web/internal/catalog"
	mw "touchsync.io/touchsync-web/internal/middleware"
	"touchsync.io/touchsync-web/internal/observability"
	"touchsync.io/touchsync-web/internal/seo"
	"touchsync.io/touchsync-web/internal/specs"
)

const (
	productsPath     = "/products"
	productsGridPath = "/products/grid"
	cardFeatureLimit = 2
)

// ProductCard is the grid tile for one product.
type ProductCard struct {
	ID              string
	Name            string
	Series          string
	Application     string
	Image           string
	Size            string
	Resolution      string
	ResolutionLabel string
	System          string
	Features        []string
	Href            string
}

// FilterOption is one checkbox in the filter sidebar. Href is the listing URL with this
// option toggled, FragHref the matching htmx fragment URL.
type FilterOption struct {
	Value    string
	Label    string
	Checked  bool
	Href     string
	FragHref string
}

// FilterChip is an active filter that removes itself when followed.
type FilterChip struct {
	Dimension string
	Label     string
	Href      string
	FragHref  string
}

// ProductsView is the listing payload shared by the page and the grid fragment.
type ProductsView struct {
	Lang          string
	Sizes         []FilterOption
	Resolutions   []FilterOption
	Chips         []FilterChip
	ActiveCount   int
	Showing       int
	Total         int
	Products      []ProductCard
	ClearHref     string
	ClearFragHref string
	Query         string
}

// ProductDetailView is the payload of a product page.
type ProductDetailView struct {
	Card       ProductCard
	TouchType  string
	Touch      string
	System     string
	Highlights []Highlight
	Sections   []specs.Section
	Scenarios  []string
}

// Highlight is a headline attribute shown in the product hero.
type Highlight struct {
	Label string
	Value string
}

func currentCatalog() *catalog.Catalog {
	return catalogSource.Current()
}

func buildProductCard(c *catalog.Catalog, p catalog.Product) ProductCard {
	features := p.Features
	if len(features) > cardFeatureLimit {
		features = features[:cardFeatureLimit]
	}
	label := c.ResolutionLabel(p.Resolution)
	if label == "" {
		label = p.Resolution
	}
	return ProductCard{
		ID:              p.ID,
		Name:            p.Name,
		Series:          p.Series,
		Application:     p.Application,
		Image:           p.Image,
		Size:            p.Size,
		Resolution:      p.Resolution,
		ResolutionLabel: label,
		System:          orNA(p.System),
		Features:        append([]string(nil), features...),
		Href:            productsPath + "/" + p.ID,
	}
}

func buildProductCards(c *catalog.Catalog, products []catalog.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, buildProductCard(c, p))
	}
	return cards
}

func buildProductsView(lang string, c *catalog.Catalog, sel catalog.Selection) ProductsView {
	all := c.Products()
	matched := catalog.Filter(all, sel)
	cleared := sel.Clear()
	view := ProductsView{
		Lang:          lang,
		ActiveCount:   sel.Count(),
		Showing:       len(matched),
		Total:         len(all),
		Products:      buildProductCards(c, matched),
		ClearHref:     cleared.URL(productsPath),
		ClearFragHref: cleared.URL(productsGridPath),
		Query:         sel.Encode(),
	}
	for _, size := range c.Sizes() {
		next := sel.Toggled(catalog.DimSize, size)
		view.Sizes = append(view.Sizes, FilterOption{
			Value:    size,
			Label:    size,
			Checked:  sel.Has(catalog.DimSize, size),
			Href:     next.URL(productsPath),
			FragHref: next.URL(productsGridPath),
		})
	}
	for _, res := range c.Resolutions() {
		next := sel.Toggled(catalog.DimResolution, res.Value)
		view.Resolutions = append(view.Resolutions, FilterOption{
			Value:    res.Value,
			Label:    res.Label,
			Checked:  sel.Has(catalog.DimResolution, res.Value),
			Href:     next.URL(productsPath),
			FragHref: next.URL(productsGridPath),
		})
	}
	for _, dim := range catalog.Dimensions {
		for _, v := range sel.Get(dim) {
			label := v
			if dim == catalog.DimResolution {
				if l := c.ResolutionLabel(v); l != "" {
					label = l
				}
			}
			next := sel.Toggled(dim, v)
			view.Chips = append(view.Chips, FilterChip{
				Dimension: string(dim),
				Label:     label,
				Href:      next.URL(productsPath),
				FragHref:  next.URL(productsGridPath),
			})
		}
	}
	return view
}

// ProductsHandler renders the catalog listing with filters taken from the query string.
func ProductsHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sel := catalog.ParseSelection(r.URL.Query())
	view := buildProductsView(lang, currentCatalog(), sel)

	vm := newPageData(r, "products.title", "Our Products",
		"products.description", "Discover our complete range of interactive displays, from meeting rooms to classrooms and digital signage.")
	vm.Products = view
	renderPage(w, r, "products", vm)
}

// ProductsGridFrag renders the sidebar and grid and pushes the canonical listing URL so the
// address bar follows every filter change.
func ProductsGridFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sel := catalog.ParseSelection(r.URL.Query())
	view := buildProductsView(lang, currentCatalog(), sel)
	mw.PushURL(w, sel.URL(productsPath))
	renderTemplate(w, r, "frag_products_catalog", view)
}

// ProductDetailHandler renders one product with its derived specification sheet. Unknown ids
// render the not-found view with status 404.
func ProductDetailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	id := chi.URLParam(r, "productID")
	c := currentCatalog()
	p, err := c.Product(id)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			observability.FromContext(r.Context()).Error("product lookup failed", zap.String("product_id", id), zap.Error(err))
		}
		productNotFound(w, r)
		return
	}

	card := buildProductCard(c, p)
	sheet := specs.Derive(p)
	view := ProductDetailView{
		Card:      card,
		TouchType: orNA(p.TouchType),
		Touch:     orNA(p.TouchPoints),
		System:    orNA(p.System),
		Sections:  sheet.Sections(),
		Scenarios: specs.Scenarios(p),
	}
	// Full feature list on the detail page.
	view.Card.Features = p.Features
	view.Highlights = []Highlight{
		{Label: i18nOrDefault(lang, "product.highlights.size", "Screen Size"), Value: p.Size},
		{Label: i18nOrDefault(lang, "product.highlights.resolution", "Resolution"), Value: p.Resolution},
		{Label: i18nOrDefault(lang, "product.highlights.system", "System"), Value: view.System},
		{Label: i18nOrDefault(lang, "product.highlights.touch", "Touch"), Value: view.Touch},
	}

	vm := newPageData(r, "", p.Name, "", productDescription(p), p.Name)
	vm.SEO.OG.Type = "product"
	vm.SEO.OG.Image = p.Image
	vm.Product = view
	vm.SEO.AddJSONLD(seo.Product(seo.ProductInfo{
		Name:        p.Name,
		Description: vm.SEO.Description,
		URL:         vm.SEO.Canonical,
		Image:       p.Image,
		SKU:         p.ID,
		Brand:       vm.Site.Name,
		Category:    p.Application,
		Properties:  sheetProperties(sheet),
	}))
	renderPage(w, r, "product", vm)
}

func productNotFound(w http.ResponseWriter, r *http.Request) {
	vm := newPageData(r, "product.not_found.title", "Product Not Found",
		"product.not_found.description", "The product you're looking for doesn't exist.")
	vm.SEO.Robots = "noindex"
	vm.NotFound = NotFoundView{
		Message:   vm.SEO.Description,
		BackHref:  productsPath,
		BackLabel: i18nOrDefault(vm.Lang, "product.not_found.back", "Back to Products"),
	}
	renderPageStatus(w, r, http.StatusNotFound, "not_found", vm)
}

func productDescription(p catalog.Product) string {
	parts := []string{p.Size, p.Resolution, p.Series}
	var kept []string
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	desc := strings.Join(kept, " ")
	if p.Application != "" {
		desc += " interactive display for " + p.Application + "."
	}
	return desc
}

func sheetProperties(sheet specs.Sheet) []seo.PropertyValue {
	var props []seo.PropertyValue
	for _, sec := range sheet.Sections() {
		for _, row := range sec.Rows {
			props = append(props, seo.PropertyValue{Name: row.Label, Value: row.Value})
		}
	}
	return props
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return "N/A"
	}
	return v
}
