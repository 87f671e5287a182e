package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookieName = "storefront_flash"

// Flash queues a message for the next rendered page. Messages already pending
// on this request are preserved.
func Flash(w http.ResponseWriter, r *http.Request, msg string) {
	msgs := readFlashes(r)
	msgs = append(msgs, msg)

	data, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes drains the queue: it returns all pending messages and clears the
// cookie so they render exactly once.
func PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	msgs := readFlashes(r)
	if len(msgs) == 0 {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return msgs
}

func readFlashes(r *http.Request) []string {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	data, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var msgs []string
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil
	}
	return msgs
}
