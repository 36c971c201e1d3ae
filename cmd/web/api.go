package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"touchsync.io/touchsync-web/internal/catalog"
	mw "touchsync.io/touchsync-web/internal/middleware"
	"touchsync.io/touchsync-web/internal/observability"
	"touchsync.io/touchsync-web/internal/specs"
)

type productListResponse struct {
	Filters  filtersResponse   `json:"filters"`
	Options  optionsResponse   `json:"options"`
	Count    int               `json:"count"`
	Total    int               `json:"total"`
	Products []catalog.Product `json:"products"`
}

type filtersResponse struct {
	Sizes        []string `json:"sizes"`
	Resolutions  []string `json:"resolutions"`
	Applications []string `json:"applications,omitempty"`
}

// optionsResponse lists every value a filter dimension can take.
type optionsResponse struct {
	Sizes        []string             `json:"sizes"`
	Resolutions  []catalog.Resolution `json:"resolutions"`
	Applications []string             `json:"applications"`
}

type productSpecsResponse struct {
	Product   catalog.Product `json:"product"`
	Sections  []specs.Section `json:"sections"`
	Scenarios []string        `json:"scenarios"`
}

// APIProductsHandler returns the filtered catalog as JSON. It accepts the same query
// parameters as the listing page.
func APIProductsHandler(w http.ResponseWriter, r *http.Request) {
	c := currentCatalog()
	sel := catalog.ParseSelection(r.URL.Query())
	all := c.Products()
	matched := catalog.Filter(all, sel)
	writeJSON(w, r, http.StatusOK, productListResponse{
		Filters: filtersResponse{
			Sizes:        nonNil(sel.Sizes),
			Resolutions:  nonNil(sel.Resolutions),
			Applications: sel.Applications,
		},
		Options: optionsResponse{
			Sizes:        c.Sizes(),
			Resolutions:  c.Resolutions(),
			Applications: c.Applications(),
		},
		Count:    len(matched),
		Total:    len(all),
		Products: matched,
	})
}

// APIProductSpecsHandler returns the derived spec sheet and scenarios for one product.
func APIProductSpecsHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	p, err := currentCatalog().Product(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			mw.WriteJSONError(w, http.StatusNotFound, "product not found")
			return
		}
		observability.FromContext(r.Context()).Error("product lookup failed", zap.String("product_id", id), zap.Error(err))
		mw.WriteJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, r, http.StatusOK, productSpecsResponse{
		Product:   p,
		Sections:  specs.Derive(p).Sections(),
		Scenarios: specs.Scenarios(p),
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		observability.FromContext(r.Context()).Warn("encode json response", zap.Error(err))
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
