// Package session manages the admin session marker: a plain cookie
// named "user" holding the entered username. Its presence — not its
// value — gates the admin view. This mirrors the product's existing
// contract; it is not a secure session token (see DESIGN.md, open
// questions).
package session

import (
	"net/http"
	"time"
)

const (
	// CookieName is the session marker cookie.
	CookieName = "user"

	// TTL is the marker's lifetime.
	TTL = 10 * 24 * time.Hour
)

// Set writes the marker cookie after a successful login.
func Set(w http.ResponseWriter, username string) {
	http.SetCookie(w, &http.Cookie{
		Name:    CookieName,
		Value:   username,
		Path:    "/",
		Expires: time.Now().Add(TTL),
	})
}

// Clear expires the marker cookie on logout.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// Present reports whether the request carries the marker cookie. The
// cookie's value is deliberately not inspected.
func Present(r *http.Request) bool {
	_, err := r.Cookie(CookieName)
	return err == nil
}
