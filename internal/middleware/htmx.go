package middleware

import (
	"encoding/json"
	"net/http"
)

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true"
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PushURL asks htmx to push url onto the browser history.
func PushURL(w http.ResponseWriter, url string) {
	w.Header().Set("HX-Push-Url", url)
}

// Trigger emits an HX-Trigger header carrying the given client events.
func Trigger(w http.ResponseWriter, events map[string]any) {
	if len(events) == 0 {
		return
	}
	if raw, err := json.Marshal(events); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
}
