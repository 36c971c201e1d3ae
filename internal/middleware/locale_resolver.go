package middleware

import (
	"context"
	"net/http"

	"touchsync.io/touchsync-web/internal/i18n"
)

const localeCookieName = "hl"

// Locale resolves and stores the preferred language in the session and cookie `hl`.
// Precedence: ?hl= query, session, hl cookie, Accept-Language, bundle fallback.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// make fallback available to request context for helpers
			ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())
			r = r.WithContext(ctx)
			s := GetSession(r)
			if q := r.URL.Query().Get("hl"); q != "" {
				if lang, ok := bundle.Match(q); ok {
					if s.Locale != lang {
						s.Locale = lang
						s.MarkDirty()
					}
					http.SetCookie(w, &http.Cookie{Name: localeCookieName, Value: lang, Path: "/", SameSite: http.SameSiteLaxMode})
				}
			}
			if _, ok := bundle.Match(s.Locale); !ok {
				lang := ""
				if c, err := r.Cookie(localeCookieName); err == nil {
					lang, _ = bundle.Match(c.Value)
				}
				if lang == "" {
					lang = bundle.Resolve(r.Header.Get("Accept-Language"))
				}
				s.Locale = lang
				s.MarkDirty()
			}
			w.Header().Set("Content-Language", s.Locale)
			next.ServeHTTP(w, r)
		})
	}
}

// Lang returns current lang from session, else the bundle fallback, else "en".
func Lang(r *http.Request) string {
	if s := GetSession(r); s != nil && s.Locale != "" {
		return s.Locale
	}
	if fb, ok := r.Context().Value(ctxKeyLocaleFB).(string); ok && fb != "" {
		return fb
	}
	return "en"
}

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}
