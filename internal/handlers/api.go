package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dcallow/storefront/internal/metrics"
	"github.com/dcallow/storefront/internal/models"
	"github.com/dcallow/storefront/internal/repo"
)

// ==========================
// APIHandler
// ==========================
type APIHandler struct {
	Users *repo.UserRepo
	Posts *repo.PostRepo
}

// RetrievePosts handles GET /api/posts/retrieve?username=...
// Every failure mode (missing parameter, unknown user, lookup fault) maps to
// the one documented error payload. The real cause is logged; internal faults
// share the "invalid parameters" message, which callers of the old API rely on.
func (h *APIHandler) RetrievePosts(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		JSONAPIError(w, ErrMessageRetrieve)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			slog.Error("api retrieve: lookup failed", "username", username, "error", err)
		}
		JSONAPIError(w, ErrMessageRetrieve)
		return
	}

	posts, err := h.Posts.ListByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("api retrieve: list posts failed", "username", username, "error", err)
		JSONAPIError(w, ErrMessageRetrieve)
		return
	}

	// Encode an empty list as [], not null.
	if posts == nil {
		posts = []models.Post{}
	}

	writeJSON(w, map[string]interface{}{
		"success":  "Query successful for " + username,
		"username": username,
		"posts":    posts,
	})
}

// SavePost handles POST /api/posts/save?username=...&tweet=...
// Tweet content is deliberately unvalidated: an empty or absent tweet is
// accepted and persisted as-is.
func (h *APIHandler) SavePost(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	tweet := r.URL.Query().Get("tweet")

	user, err := h.Users.GetByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			slog.Error("api save: lookup failed", "username", username, "error", err)
		}
		JSONAPIError(w, ErrMessageSave)
		return
	}

	post := models.Post{UserID: user.ID, Tweet: tweet}
	if err := h.Posts.Create(r.Context(), &post); err != nil {
		slog.Error("api save: create post failed", "username", username, "error", err)
		JSONAPIError(w, ErrMessageSave)
		return
	}

	metrics.PostsCreated.WithLabelValues("api").Inc()
	writeJSON(w, map[string]interface{}{
		"success":   "Tweet posted.",
		"username":  user.Username,
		"post_data": post,
	})
}
