package main

import (
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"touchsync.io/touchsync-web/internal/catalog"
	"touchsync.io/touchsync-web/internal/cms"
	handlersPkg "touchsync.io/touchsync-web/internal/handlers"
	mw "touchsync.io/touchsync-web/internal/middleware"
	"touchsync.io/touchsync-web/internal/observability"
	"touchsync.io/touchsync-web/internal/seo"
)

const featuredProductCount = 6

// HomeView is the landing page payload.
type HomeView struct {
	handlersPkg.HomeContent
	Featured  []ProductCard
	Solutions []catalog.Solution
}

// AboutView is the about page payload.
type AboutView struct {
	handlersPkg.AboutContent
	Mission      template.HTML
	MissionTitle string
}

// SolutionsView is the solutions page payload.
type SolutionsView struct {
	Solutions []catalog.Solution
}

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	c := currentCatalog()
	vm := newPageData(r, "home.title", "Interactive Display Solutions",
		"home.description", "Empower meetings, classrooms and public spaces with intelligent touch displays designed for seamless collaboration.")
	vm.Home = HomeView{
		HomeContent: handlersPkg.BuildHomeContent(translator(lang)),
		Featured:    buildProductCards(c, c.Featured(featuredProductCount)),
		Solutions:   c.Solutions(),
	}
	vm.SEO.AddJSONLD(seo.Organization(vm.Site.Name, vm.Site.BaseURL, vm.Site.BaseURL+"/assets/img/logo.svg",
		seo.ContactPoint{Email: vm.Site.Email, Phone: vm.Site.Phone}))
	vm.SEO.AddJSONLD(seo.WebSite(vm.Site.Name, vm.Site.BaseURL))
	renderPage(w, r, "home", vm)
}

// AboutHandler renders the company page. The mission body comes from the content store; when
// it is unavailable the page still renders without it.
func AboutHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	vm := newPageData(r, "about.title", "About TouchSync",
		"about.description", "Leading the way in interactive display technology, empowering collaboration and learning across the globe.")
	view := AboutView{AboutContent: handlersPkg.BuildAboutContent(translator(lang))}

	if cmsClient != nil {
		page, err := cmsClient.GetContentPage(r.Context(), "pages", "about", lang)
		switch {
		case err == nil:
			view.Mission = page.HTML
			view.MissionTitle = page.Title
			if page.SEO.Description != "" {
				vm.SEO.Description = page.SEO.Description
				vm.SEO.OG.Description = page.SEO.Description
			}
		case errors.Is(err, cms.ErrNotFound):
		default:
			observability.FromContext(r.Context()).Warn("about content unavailable", zap.String("lang", lang), zap.Error(err))
		}
	}
	vm.About = view
	renderPage(w, r, "about", vm)
}

// SolutionsHandler renders every industry solution with its anchor.
func SolutionsHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPageData(r, "solutions.title", "Solutions by Industry",
		"solutions.description", "Tailored interactive display solutions designed to meet the unique needs of your industry.")
	vm.Solutions = SolutionsView{Solutions: currentCatalog().Solutions()}
	renderPage(w, r, "solutions", vm)
}

// NotFoundHandler renders the generic 404 page.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPageData(r, "notfound.title", "Page Not Found",
		"notfound.description", "The page you're looking for doesn't exist.")
	vm.SEO.Robots = "noindex"
	vm.NotFound = NotFoundView{
		Message:   vm.SEO.Description,
		BackHref:  "/",
		BackLabel: i18nOrDefault(vm.Lang, "notfound.back", "Back to Home"),
	}
	renderPageStatus(w, r, http.StatusNotFound, "not_found", vm)
}

// NotFoundView is the payload of the 404 page.
type NotFoundView struct {
	Message   string
	BackHref  string
	BackLabel string
}
