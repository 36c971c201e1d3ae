package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"touchsync.io/touchsync-web/internal/catalog"
	"touchsync.io/touchsync-web/internal/cms"
	"touchsync.io/touchsync-web/internal/config"
	handlersPkg "touchsync.io/touchsync-web/internal/handlers"
	"touchsync.io/touchsync-web/internal/i18n"
	"touchsync.io/touchsync-web/internal/inquiry"
	mw "touchsync.io/touchsync-web/internal/middleware"
)

const testSubmitDelay = 100 * time.Millisecond

// newTestRouter builds the application router with test paths and a short contact delay.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	_, err := parseTemplates()
	require.NoError(t, err, "parseTemplates")

	i18nBundle, err = i18n.Load("../../locales", "en", []string{"en", "zh"})
	require.NoError(t, err, "load i18n")

	dataset, err := catalog.Default()
	require.NoError(t, err)
	catalogSource = catalog.NewSource(dataset)
	inquiryDesk = inquiry.NewDesk(inquiry.WithDelay(testSubmitDelay))
	cmsClient = cms.NewClient("", cms.WithContentDir("../../content"), cms.WithFallbackLang("en"))
	siteCfg = config.SiteConfig{Name: "TouchSync", BaseURL: "https://www.touchsync.test", Environment: "test"}
	analytics = handlersPkg.Analytics{}
	mw.ConfigureSession("test-signing-key", false)

	return newRouter(zap.NewNop(), 0)
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestHomeRendersLayoutAndFeaturedProducts(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Values("Vary"), "Accept-Language")

	doc := parseDoc(t, rec)
	require.Equal(t, 6, doc.Find(".featured-products .product-card").Length())
	require.Equal(t, "mr-pro-65", doc.Find(".product-card").First().AttrOr("data-product-id", ""))
	require.Equal(t, "Home", strings.TrimSpace(doc.Find(".navbar__link--active").Text()))
	require.Equal(t, 4, doc.Find(".hero__stats .stat").Length())
	require.Equal(t, 4, doc.Find(".solution-card").Length())
	require.Contains(t, doc.Find(".footer__copyright").Text(), "TouchSync. All rights reserved.")
	href, _ := doc.Find(".footer__links a").First().Attr("href")
	require.Equal(t, "/products?application=Meeting+Room", href)
	require.Equal(t, "https://www.touchsync.test/", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	require.GreaterOrEqual(t, doc.Find(`script[type="application/ld+json"]`).Length(), 2)
}

func TestHomeLocalizedNav_ZH(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	rec := serve(t, srv, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "zh", rec.Header().Get("Content-Language"))

	doc := parseDoc(t, rec)
	require.Equal(t, "zh", doc.Find("html").AttrOr("lang", ""))
	require.Contains(t, doc.Find(".navbar__links").Text(), "产品中心")
}

func TestProductsFiltersFromQuery(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/products?sizes=65%22,75%22&resolutions=4K", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseDoc(t, rec)
	require.Equal(t, 5, doc.Find(".products-grid .product-card").Length())
	require.Equal(t, "Showing 5 products", strings.TrimSpace(doc.Find(".products-results").Text()))
	require.Equal(t, "3", doc.Find("#catalog").AttrOr("data-active-filters", ""))
	require.Equal(t, 3, doc.Find(".products-active-filter").Length())

	var checked []string
	doc.Find(`.products-filter__option[aria-checked="true"]`).Each(func(_ int, s *goquery.Selection) {
		checked = append(checked, s.AttrOr("data-value", ""))
	})
	require.Equal(t, []string{`65"`, `75"`, "4K"}, checked)

	// each checkbox links to the listing with that option toggled
	sizes := doc.Find(`[data-dimension="sizes"] .products-filter__option`)
	href := func(value string) string {
		return sizes.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.AttrOr("data-value", "") == value
		}).AttrOr("href", "")
	}
	require.Equal(t, "/products?resolutions=4K&sizes=75%22", href(`65"`))
	require.Equal(t, "/products?resolutions=4K&sizes=65%22%2C75%22%2C86%22", href(`86"`))
	require.Equal(t, "/products", doc.Find(".products-clear").AttrOr("href", ""))
	require.Equal(t, "/products/grid", doc.Find(".products-clear").AttrOr("hx-get", ""))
}

func TestProductsEmptyStateIsNotAnError(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/products?sizes=37%22&resolutions=4K", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseDoc(t, rec)
	require.Zero(t, doc.Find(".product-card").Length())
	require.Equal(t, 1, doc.Find(".products-empty").Length())
	require.Equal(t, "/products", doc.Find(".products-empty a").AttrOr("href", ""))
	require.Equal(t, "Showing 0 products", strings.TrimSpace(doc.Find(".products-results").Text()))
}

func TestProductsUnknownTokensMatchNothing(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/products?resolutions=16K", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	require.Zero(t, doc.Find(".product-card").Length())
	chip := doc.Find(".products-active-filter")
	require.Equal(t, 1, chip.Length())
	require.Contains(t, chip.Text(), "16K")
	require.Equal(t, "/products", chip.AttrOr("href", ""))
}

func TestProductsGridFragPushesURL(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/products/grid?sizes=65%22", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(t, srv, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "/products?sizes=65%22", rec.Header().Get("HX-Push-Url"))
	require.NotContains(t, rec.Body.String(), "<html")

	doc := parseDoc(t, rec)
	require.Equal(t, 1, doc.Find("#catalog").Length())
	require.Equal(t, 3, doc.Find(".product-card").Length())

	// clearing pushes the bare listing URL
	req = httptest.NewRequest(http.MethodGet, "/products/grid", nil)
	req.Header.Set("HX-Request", "true")
	rec = serve(t, srv, req)
	require.Equal(t, "/products", rec.Header().Get("HX-Push-Url"))
}

func TestProductDetailRendersDerivedSpecs(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/products/mr-pro-65", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseDoc(t, rec)
	require.Equal(t, "TouchSync MR Pro 65", strings.TrimSpace(doc.Find("h1").Text()))
	require.Equal(t, 4, doc.Find(".spec-card").Length())

	rows := map[string]string{}
	doc.Find(".spec-row").Each(func(_ int, s *goquery.Selection) {
		rows[strings.TrimSpace(s.Find(".spec-label").Text())] = strings.TrimSpace(s.Find(".spec-value").Text())
	})
	require.Equal(t, "0.372 x 0.372 mm", rows["Pixel Pitch (HxV)"])
	require.Equal(t, "3,840 x 2,160", rows["Resolution"])
	require.Equal(t, "400 nits", rows["Brightness (Typ)"])
	require.Equal(t, "Wi-Fi 6 (802.11ax)", rows["Wi-Fi"])
	require.Greater(t, doc.Find(".scenarios-items li").Length(), 0)

	var sawProduct bool
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(s.Text()), &payload))
		if payload["@type"] == "Product" {
			sawProduct = true
			require.Equal(t, "mr-pro-65", payload["sku"])
		}
	})
	require.True(t, sawProduct, "product JSON-LD present")

	crumbs := doc.Find(".breadcrumbs li")
	require.Equal(t, 3, crumbs.Length())
	require.Equal(t, "TouchSync MR Pro 65", strings.TrimSpace(crumbs.Last().Text()))
}

func TestProductDetailUnknownIDIsNotFound(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/products/does-not-exist", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	doc := parseDoc(t, rec)
	require.Equal(t, "Product Not Found", strings.TrimSpace(doc.Find(".not-found h1").Text()))
	require.Equal(t, "/products", doc.Find(".not-found a").AttrOr("href", ""))
	require.Equal(t, "noindex", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))
}

func TestProductDetailMatchesIDExactly(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/products/%20mr-pro-65", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, srv, httptest.NewRequest(http.MethodGet, "/api/products/%20mr-pro-65/specs", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRouteRendersNotFoundPage(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Page Not Found")
}

func TestAboutRendersMissionFromContent(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/about", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	require.Contains(t, doc.Find(".about-mission__text").Text(), "Fortune 500 boardrooms")
	require.Equal(t, 6, doc.Find(".timeline__item").Length())
	require.Equal(t, 4, doc.Find(".about-values .feature-card").Length())

	req := httptest.NewRequest(http.MethodGet, "/about?hl=zh", nil)
	rec = serve(t, srv, req)
	doc = parseDoc(t, rec)
	require.Equal(t, "我们的使命", strings.TrimSpace(doc.Find(".about-mission__text h2").Text()))
}

func TestSolutionsAnchors(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/solutions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	for _, id := range []string{"enterprise-meeting", "smart-classroom", "retail-display", "control-center"} {
		require.Equal(t, 1, doc.Find("#"+id).Length(), id)
	}
	require.Equal(t, 2, doc.Find(".solution-detail--reverse").Length())
}

func TestAPIProducts(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/api/products?resolutions=8K", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Count   int `json:"count"`
		Total   int `json:"total"`
		Filters struct {
			Sizes       []string `json:"sizes"`
			Resolutions []string `json:"resolutions"`
		} `json:"filters"`
		Options struct {
			Sizes        []string `json:"sizes"`
			Applications []string `json:"applications"`
		} `json:"options"`
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Options.Sizes, 8)
	require.Equal(t, "Meeting Room", body.Options.Applications[0])
	require.Equal(t, 1, body.Count)
	require.Equal(t, 18, body.Total)
	require.Equal(t, "mr-max-98", body.Products[0].ID)
	require.Equal(t, []string{"8K"}, body.Filters.Resolutions)
	require.Empty(t, body.Filters.Sizes)
}

func TestAPIProductSpecs(t *testing.T) {
	srv := newTestRouter(t)
	rec := serve(t, srv, httptest.NewRequest(http.MethodGet, "/api/products/clear-55/specs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Sections []struct {
			Key  string `json:"key"`
			Rows []struct {
				Label string `json:"label"`
				Value string `json:"value"`
			} `json:"rows"`
		} `json:"sections"`
		Scenarios []string `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Sections, 4)
	require.Equal(t, "performance", body.Sections[1].Key)
	require.Equal(t, "1ms", body.Sections[1].Rows[1].Value, "OLED series responds in 1ms")
	require.NotEmpty(t, body.Scenarios)

	rec = serve(t, srv, httptest.NewRequest(http.MethodGet, "/api/products/nope/specs", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"product not found"}`, rec.Body.String())
}

// visitor carries cookies between requests the way a browser would.
type visitor struct {
	t       *testing.T
	srv     http.Handler
	cookies map[string]*http.Cookie
}

func newVisitor(t *testing.T, srv http.Handler) *visitor {
	return &visitor{t: t, srv: srv, cookies: map[string]*http.Cookie{}}
}

func (v *visitor) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range v.cookies {
		req.AddCookie(c)
	}
	rec := serve(v.t, v.srv, req)
	for _, c := range rec.Result().Cookies() {
		v.cookies[c.Name] = c
	}
	return rec
}

func (v *visitor) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return v.do(req)
}

func (v *visitor) get(path string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return v.do(req)
}

func TestContactSubmissionLifecycle(t *testing.T) {
	srv := newTestRouter(t)
	v := newVisitor(t, srv)

	rec := v.get("/contact", false)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	require.Equal(t, "idle", doc.Find("#contact-panel").AttrOr("data-state", ""))
	require.Equal(t, 9, doc.Find("#industry option").Length(), "placeholder plus eight industries")
	token := doc.Find(`input[name="csrf_token"]`).AttrOr("value", "")
	require.NotEmpty(t, token)

	// missing required fields keep the form idle with values and errors
	rec = v.post("/contact", url.Values{"csrf_token": {token}, "name": {"Ada"}, "phone": {"+1 555"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc = parseDoc(t, rec)
	require.Equal(t, "idle", doc.Find("#contact-panel").AttrOr("data-state", ""))
	require.Equal(t, "Ada", doc.Find("#name").AttrOr("value", ""))
	require.Equal(t, 4, doc.Find(".contact-form__error").Length())

	form := url.Values{
		"csrf_token": {token},
		"name":       {"Ada Lovelace"},
		"email":      {"ada@example.com"},
		"company":    {"Analytical Engines"},
		"industry":   {"Higher Education"},
		"message":    {"Forty boards for lecture halls."},
	}
	rec = v.post("/contact", form, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc = parseDoc(t, rec)
	panel := doc.Find("#contact-panel")
	require.Equal(t, "submitting", panel.AttrOr("data-state", ""))
	require.Equal(t, "/contact/status", panel.AttrOr("hx-get", ""))
	require.Equal(t, "Sending...", strings.TrimSpace(doc.Find(".contact-form__submit").Text()))
	_, disabled := doc.Find("fieldset").Attr("disabled")
	require.True(t, disabled)

	// another visitor is unaffected
	other := newVisitor(t, srv)
	otherDoc := parseDoc(t, other.get("/contact", false))
	require.Equal(t, "idle", otherDoc.Find("#contact-panel").AttrOr("data-state", ""))

	var final *httptest.ResponseRecorder
	require.Eventually(t, func() bool {
		final = v.get("/contact/status", true)
		return strings.Contains(final.Body.String(), `data-state="submitted"`)
	}, 3*time.Second, 20*time.Millisecond)
	require.Contains(t, final.Header().Get("HX-Trigger"), "contact:submitted")
	doc = parseDoc(t, final)
	require.Equal(t, "Thank You!", strings.TrimSpace(doc.Find("#contact-panel h2").Text()))
	require.NotEmpty(t, doc.Find("#contact-panel").AttrOr("data-inquiry-id", ""))

	// a full page load shows the same state
	doc = parseDoc(t, v.get("/contact", false))
	require.Equal(t, "submitted", doc.Find("#contact-panel").AttrOr("data-state", ""))

	rec = v.post("/contact/reset", url.Values{"csrf_token": {token}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc = parseDoc(t, rec)
	require.Equal(t, "idle", doc.Find("#contact-panel").AttrOr("data-state", ""))
	require.Empty(t, doc.Find("#name").AttrOr("value", ""))
	require.Empty(t, strings.TrimSpace(doc.Find("#message").Text()))
}

func TestContactPlainPostRedirects(t *testing.T) {
	srv := newTestRouter(t)
	v := newVisitor(t, srv)
	doc := parseDoc(t, v.get("/contact", false))
	token := doc.Find(`input[name="csrf_token"]`).AttrOr("value", "")

	rec := v.post("/contact", url.Values{
		"csrf_token": {token},
		"name":       {"Grace"},
		"email":      {"grace@example.com"},
		"company":    {"Navy"},
		"industry":   {"Government"},
		"message":    {"Briefing room displays."},
	}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/contact", rec.Header().Get("Location"))

	doc = parseDoc(t, v.get("/contact", false))
	require.Contains(t, []string{"submitting", "submitted"}, doc.Find("#contact-panel").AttrOr("data-state", ""))

	rec = v.post("/contact", url.Values{"csrf_token": {token}}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code, "a second submit while busy is ignored")
}

func TestContactInvalidPlainPostIsUnprocessable(t *testing.T) {
	srv := newTestRouter(t)
	v := newVisitor(t, srv)
	doc := parseDoc(t, v.get("/contact", false))
	token := doc.Find(`input[name="csrf_token"]`).AttrOr("value", "")

	rec := v.post("/contact", url.Values{"csrf_token": {token}, "email": {"not-an-email"}}, false)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	doc = parseDoc(t, rec)
	require.Equal(t, "Please enter a valid email address.", strings.TrimSpace(doc.Find(".contact-form__field--error #email").Parent().Find(".contact-form__error").Text()))
}

func TestContactRequiresCSRF(t *testing.T) {
	srv := newTestRouter(t)
	v := newVisitor(t, srv)
	v.get("/contact", false)
	rec := v.post("/contact", url.Values{"name": {"Mallory"}}, false)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
