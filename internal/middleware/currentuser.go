package middleware

import (
	"context"
	"net/http"

	"github.com/dcallow/storefront/internal/models"
	"github.com/dcallow/storefront/internal/repo"
	"github.com/dcallow/storefront/internal/session"
)

type key string

const currentUserKey key = "current_user"

// CurrentUser resolves the session cookie to a *models.User and threads it
// through the request context. Requests without a valid session pass through
// unauthenticated; a session pointing at a deleted user also reads as
// unauthenticated rather than failing the request.
func CurrentUser(sessions *session.Manager, users *repo.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := sessions.UserID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user for this request, if any.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*models.User)
	return user, ok
}
