package main

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	mw "touchsync.io/touchsync-web/internal/middleware"
)

// newRouter wires middleware and routes. Package-level dependencies (templates, i18n bundle,
// catalog source, inquiry desk, content client) must be initialised first.
func newRouter(logger *zap.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	if requestTimeout > 0 {
		r.Use(chimw.Timeout(requestTimeout))
	}

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	// Static assets under /assets/
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(publicDir, "assets"), "/assets", devMode))

	r.Group(func(r chi.Router) {
		r.Use(mw.HTMX)
		r.Use(mw.Session)
		r.Use(mw.Locale(i18nBundle))
		r.Use(mw.CSRF)
		r.Use(mw.VaryLocale)

		r.Get("/", HomeHandler)
		r.Get("/about", AboutHandler)
		r.Get("/solutions", SolutionsHandler)

		r.Get("/products", ProductsHandler)
		r.Get("/products/grid", ProductsGridFrag)
		r.Get("/products/{productID}", ProductDetailHandler)

		r.Get("/contact", ContactHandler)
		r.Post("/contact", ContactSubmitHandler)
		r.Get("/contact/status", ContactStatusFrag)
		r.Post("/contact/reset", ContactResetHandler)

		r.NotFound(NotFoundHandler)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", APIProductsHandler)
		r.Get("/products/{productID}/specs", APIProductSpecsHandler)
	})

	return r
}
