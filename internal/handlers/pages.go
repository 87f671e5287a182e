package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dcallow/storefront/internal/forms"
	"github.com/dcallow/storefront/internal/metrics"
	"github.com/dcallow/storefront/internal/middleware"
	"github.com/dcallow/storefront/internal/models"
	"github.com/dcallow/storefront/internal/repo"
	"github.com/dcallow/storefront/internal/session"
)

// flashGenericFailure is shown when an unexpected failure occurs on a page
// route. Raw fault detail never reaches the rendered page.
const flashGenericFailure = "Something went wrong. Please try again."

// products is the fixed demo catalog; nothing in the store is persisted.
var products = []models.Product{
	{ID: 1001, Title: "Soap", Price: "3.98", Desc: "Very clean soapy soap. Has soapness."},
	{ID: 1002, Title: "Grapes", Price: "4.55", Desc: "This is a bundle of grapey grapes."},
	{ID: 1003, Title: "Laptop", Price: "1100.99", Desc: "Great for laps and tops!"},
	{ID: 1004, Title: "Chair", Price: "114.45", Desc: "Great for sitting and standing on! This chair is specifically 10 feet by 10 feet with an even bigger back. Sits up to 1,000 ants or two cookie monsters."},
}

// ==========================
// PageHandler
// ==========================
type PageHandler struct {
	Users    *repo.UserRepo
	Posts    *repo.PostRepo
	Contacts *repo.ContactRepo
	Sessions *session.Manager
	Render   *Renderer
}

// ==========================
// Index (/, /index, /index/{header})
// ==========================
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	header := chi.URLParam(r, "header")
	h.Render.Render(w, r, "index.html", map[string]interface{}{
		"Title":    "Home",
		"Header":   header,
		"Products": products,
	})
}

func (h *PageHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.Render.Render(w, r, "checkout.html", map[string]interface{}{
		"Title": "Checkout",
	})
}

// ==========================
// Title form (/title)
// ==========================
func titleFields(f forms.Title) []Field {
	return []Field{
		{Name: "title", Label: "Title", Type: "text", Value: f.Title},
	}
}

func (h *PageHandler) TitleForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "Change Title", "/title", "Submit", titleFields(forms.Title{}), "")
}

func (h *PageHandler) TitleSubmit(w http.ResponseWriter, r *http.Request) {
	var f forms.Title
	fieldErrs, err := forms.Decode(r, &f)
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if len(fieldErrs) > 0 {
		h.renderForm(w, r, "Change Title", "/title", "Submit", applyErrors(titleFields(f), fieldErrs), "")
		return
	}
	// The submitted title flows only through the URL; nothing is persisted.
	http.Redirect(w, r, "/index/"+url.PathEscape(f.Title), http.StatusFound)
}

// ==========================
// Login (/login)
// ==========================
func loginFields(f forms.Login) []Field {
	return []Field{
		{Name: "email", Label: "Email", Type: "email", Value: f.Email},
		{Name: "password", Label: "Password", Type: "password"},
		{Name: "remember_me", Label: "Remember me", Type: "checkbox"},
	}
}

func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFrom(r.Context()); ok {
		session.Flash(w, r, "You are already logged in.")
		http.Redirect(w, r, "/index", http.StatusFound)
		return
	}
	h.renderForm(w, r, "Login", "/login", "Login", loginFields(forms.Login{}), "")
}

func (h *PageHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFrom(r.Context()); ok {
		session.Flash(w, r, "You are already logged in.")
		http.Redirect(w, r, "/index", http.StatusFound)
		return
	}

	var f forms.Login
	fieldErrs, err := forms.Decode(r, &f)
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if len(fieldErrs) > 0 {
		h.renderForm(w, r, "Login", "/login", "Login", applyErrors(loginFields(f), fieldErrs), "")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), f.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		slog.Error("login: lookup failed", "error", err)
		session.Flash(w, r, flashGenericFailure)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	// Same message for unknown email and wrong password; do not reveal which.
	if err != nil || !h.Users.CheckPassword(user, f.Password) {
		metrics.Logins.WithLabelValues("failure").Inc()
		session.Flash(w, r, "Credentials are incorrect.")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := h.Sessions.Login(w, user.ID, f.RememberMe); err != nil {
		slog.Error("login: issue session", "error", err)
		session.Flash(w, r, flashGenericFailure)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	metrics.Logins.WithLabelValues("success").Inc()
	session.Flash(w, r, "You are now logged in!")
	http.Redirect(w, r, "/profile/"+url.PathEscape(user.Username), http.StatusFound)
}

// ==========================
// Register (/register)
// ==========================
func registerFields(f forms.Register) []Field {
	age := ""
	if f.Age != 0 {
		age = strconv.Itoa(f.Age)
	}
	return []Field{
		{Name: "first_name", Label: "First name", Type: "text", Value: f.FirstName},
		{Name: "last_name", Label: "Last name", Type: "text", Value: f.LastName},
		{Name: "username", Label: "Username", Type: "text", Value: f.Username},
		{Name: "email", Label: "Email", Type: "email", Value: f.Email},
		{Name: "url", Label: "Website", Type: "text", Value: f.URL},
		{Name: "age", Label: "Age", Type: "number", Value: age},
		{Name: "bio", Label: "Bio", Type: "textarea", Value: f.Bio},
		{Name: "password", Label: "Password", Type: "password"},
	}
}

func (h *PageHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFrom(r.Context()); ok {
		session.Flash(w, r, "You are already logged in.")
		http.Redirect(w, r, "/index", http.StatusFound)
		return
	}
	h.renderForm(w, r, "Register", "/register", "Register", registerFields(forms.Register{}), "")
}

func (h *PageHandler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFrom(r.Context()); ok {
		session.Flash(w, r, "You are already logged in.")
		http.Redirect(w, r, "/index", http.StatusFound)
		return
	}

	var f forms.Register
	fieldErrs, err := forms.Decode(r, &f)
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if len(fieldErrs) > 0 {
		h.renderForm(w, r, "Register", "/register", "Register", applyErrors(registerFields(f), fieldErrs), "")
		return
	}

	user := models.User{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Username:  f.Username,
		Email:     f.Email,
		URL:       f.URL,
		Age:       f.Age,
		Bio:       f.Bio,
	}

	err = h.Users.Create(r.Context(), &user, f.Password)
	if errors.Is(err, repo.ErrDuplicate) {
		h.renderForm(w, r, "Register", "/register", "Register", registerFields(f),
			"That username or email is already taken.")
		return
	}
	if err != nil {
		slog.Error("register: create user failed", "error", err)
		session.Flash(w, r, flashGenericFailure)
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	metrics.UsersRegistered.Inc()
	session.Flash(w, r, "Thanks for registering!")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ==========================
// Contact (/contact)
// ==========================
func contactFields(f forms.Contact) []Field {
	return []Field{
		{Name: "name", Label: "Name", Type: "text", Value: f.Name},
		{Name: "email", Label: "Email", Type: "email", Value: f.Email},
		{Name: "message", Label: "Message", Type: "textarea", Value: f.Message},
	}
}

func (h *PageHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "Contact Us", "/contact", "Send", contactFields(forms.Contact{}), "")
}

func (h *PageHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	var f forms.Contact
	fieldErrs, err := forms.Decode(r, &f)
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if len(fieldErrs) > 0 {
		h.renderForm(w, r, "Contact Us", "/contact", "Send", applyErrors(contactFields(f), fieldErrs), "")
		return
	}

	contact := models.Contact{Name: f.Name, Email: f.Email, Message: f.Message}
	if err := h.Contacts.Create(r.Context(), &contact); err != nil {
		slog.Error("contact: create failed", "error", err)
		session.Flash(w, r, flashGenericFailure)
		http.Redirect(w, r, "/contact", http.StatusFound)
		return
	}

	session.Flash(w, r, "Thanks for contacting us, we will be in touch soon")
	http.Redirect(w, r, "/contact", http.StatusFound)
}

// ==========================
// Profile (/profile/{username})
// ==========================
func (h *PageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, forms.Post{}, nil)
}

// ProfilePost creates a post attributed to the authenticated caller, not the
// profile owner being viewed. Viewing bob's profile while logged in as carol
// and posting yields a post owned by carol.
func (h *PageHandler) ProfilePost(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	caller, ok := middleware.UserFrom(r.Context())
	if !ok {
		session.Flash(w, r, "You must be logged in to post.")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	var f forms.Post
	fieldErrs, err := forms.Decode(r, &f)
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if len(fieldErrs) > 0 {
		h.renderProfile(w, r, f, fieldErrs)
		return
	}

	post := models.Post{UserID: caller.ID, Tweet: f.Tweet}
	if err := h.Posts.Create(r.Context(), &post); err != nil {
		slog.Error("profile: create post failed", "error", err)
		session.Flash(w, r, flashGenericFailure)
		http.Redirect(w, r, "/profile/"+url.PathEscape(username), http.StatusFound)
		return
	}

	metrics.PostsCreated.WithLabelValues("profile").Inc()
	http.Redirect(w, r, "/profile/"+url.PathEscape(username), http.StatusFound)
}

// renderProfile always shows the looked-up user's data regardless of the
// submission outcome; an unknown username renders the not-found state instead
// of failing.
func (h *PageHandler) renderProfile(w http.ResponseWriter, r *http.Request, f forms.Post, fieldErrs map[string]string) {
	username := chi.URLParam(r, "username")

	data := map[string]interface{}{
		"Title":      "Profile",
		"TweetValue": f.Tweet,
		"TweetError": fieldErrs["tweet"],
	}

	user, err := h.Users.GetByUsername(r.Context(), username)
	if errors.Is(err, repo.ErrNotFound) {
		data["NotFound"] = true
		h.Render.Render(w, r, "profile.html", data)
		return
	}
	if err != nil {
		slog.Error("profile: lookup failed", "username", username, "error", err)
		session.Flash(w, r, flashGenericFailure)
		http.Redirect(w, r, "/index", http.StatusFound)
		return
	}

	posts, err := h.Posts.ListByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("profile: list posts failed", "username", username, "error", err)
		session.Flash(w, r, flashGenericFailure)
		http.Redirect(w, r, "/index", http.StatusFound)
		return
	}

	data["ProfileUser"] = user
	data["Posts"] = posts
	h.Render.Render(w, r, "profile.html", data)
}

// ==========================
// Logout (/logout)
// ==========================
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *PageHandler) renderForm(w http.ResponseWriter, r *http.Request, title, action, submit string, fields []Field, formErr string) {
	h.Render.Render(w, r, "form.html", map[string]interface{}{
		"Title":       title,
		"Action":      action,
		"SubmitLabel": submit,
		"Fields":      fields,
		"Error":       formErr,
	})
}
