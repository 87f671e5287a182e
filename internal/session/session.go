// Package session tracks the authenticated identity across requests with a
// signed JWT carried in an HttpOnly cookie, and holds the one-shot flash
// message queue surfaced on the next rendered page.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "storefront_session"

type Manager struct {
	secret       []byte
	sessionHours int
	rememberDays int

	// Secure marks issued cookies Secure; enable when serving HTTPS.
	Secure bool
}

func NewManager(secret []byte, sessionHours, rememberDays int) *Manager {
	return &Manager{
		secret:       secret,
		sessionHours: sessionHours,
		rememberDays: rememberDays,
	}
}

// Login establishes the session identity. When persistent is set ("remember
// me"), the cookie and token live for rememberDays instead of sessionHours.
func (m *Manager) Login(w http.ResponseWriter, userID uint, persistent bool) error {
	ttl := time.Duration(m.sessionHours) * time.Hour
	if persistent {
		ttl = time.Duration(m.rememberDays) * 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if persistent {
		// Session cookies vanish with the browser; only "remember me" persists.
		cookie.MaxAge = int(ttl / time.Second)
	}
	http.SetCookie(w, cookie)
	return nil
}

// Logout clears the session cookie.
func (m *Manager) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID returns the identity carried by the request's session cookie.
// A missing, malformed, or expired token reads as "not authenticated".
func (m *Manager) UserID(r *http.Request) (uint, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}

	token, err := jwt.Parse(c.Value, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
