package handlers

import (
	"net/http"

	"menuboard/internal/auth"
	"menuboard/internal/session"
)

// Auth groups the login and logout handlers.
type Auth struct {
	verifier auth.Verifier
}

// NewAuth creates a new Auth handler group.
func NewAuth(verifier auth.Verifier) *Auth {
	return &Auth{verifier: verifier}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the submitted credentials and, on success, sets the
// session marker cookie carrying the entered username. There is no
// rate limiting or lockout.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if !a.verifier.Verify(req.Username, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	session.Set(w, req.Username)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Logout clears the session marker cookie.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
