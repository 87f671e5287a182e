package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const visitorCookieName = "storefront_visitor"

type visitorKey struct{}

// Visitor assigns an anonymous uuid cookie on first contact and threads the
// value through the context so request logs can correlate page views across
// visits. The cookie carries no identity and is independent of login state.
func Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(visitorCookieName); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     visitorCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   365 * 24 * 3600,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), visitorKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// VisitorFrom returns the visitor ID for this request, or "" when the
// middleware is not installed.
func VisitorFrom(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}
