package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/dcallow/storefront/internal/db"
	"github.com/dcallow/storefront/internal/middleware"
	"github.com/dcallow/storefront/internal/models"
	"github.com/dcallow/storefront/internal/repo"
	"github.com/dcallow/storefront/internal/session"
)

type testEnv struct {
	router   chi.Router
	gdb      *gorm.DB
	users    *repo.UserRepo
	posts    *repo.PostRepo
	contacts *repo.ContactRepo
	sessions *session.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	users := repo.NewUserRepo(gdb)
	posts := repo.NewPostRepo(gdb)
	contacts := repo.NewContactRepo(gdb)
	sessions := session.NewManager([]byte("test-secret"), 24, 30)

	pages := &PageHandler{
		Users:    users,
		Posts:    posts,
		Contacts: contacts,
		Sessions: sessions,
		Render:   NewRenderer(),
	}
	api := &APIHandler{Users: users, Posts: posts}

	r := chi.NewRouter()
	r.Use(middleware.CurrentUser(sessions, users))
	r.Get("/", pages.Index)
	r.Get("/index", pages.Index)
	r.Get("/index/{header}", pages.Index)
	r.Get("/checkout", pages.Checkout)
	r.Get("/title", pages.TitleForm)
	r.Post("/title", pages.TitleSubmit)
	r.Get("/login", pages.LoginForm)
	r.Post("/login", pages.LoginSubmit)
	r.Get("/register", pages.RegisterForm)
	r.Post("/register", pages.RegisterSubmit)
	r.Get("/contact", pages.ContactForm)
	r.Post("/contact", pages.ContactSubmit)
	r.Get("/profile/{username}", pages.Profile)
	r.Post("/profile/{username}", pages.ProfilePost)
	r.Get("/logout", pages.Logout)
	r.Get("/api/posts/retrieve", api.RetrievePosts)
	r.Post("/api/posts/save", api.SavePost)

	return &testEnv{
		router:   r,
		gdb:      gdb,
		users:    users,
		posts:    posts,
		contacts: contacts,
		sessions: sessions,
	}
}

func (e *testEnv) createUser(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	u := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     email,
	}
	if err := e.users.Create(t.Context(), u, password); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// sessionCookie issues a valid session cookie for the given user.
func (e *testEnv) sessionCookie(t *testing.T, userID uint) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	if err := e.sessions.Login(rr, userID, false); err != nil {
		t.Fatalf("issue session: %v", err)
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// flashesFrom decodes the flash cookie queued on a response, if any.
func flashesFrom(t *testing.T, rr *httptest.ResponseRecorder) []string {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name != "storefront_flash" || c.Value == "" {
			continue
		}
		data, err := base64.URLEncoding.DecodeString(c.Value)
		if err != nil {
			t.Fatalf("decode flash cookie: %v", err)
		}
		var msgs []string
		if err := json.Unmarshal(data, &msgs); err != nil {
			t.Fatalf("unmarshal flash cookie: %v", err)
		}
		return msgs
	}
	return nil
}
