// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"menuboard/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// AdminKey is the context key for the admin-authenticated flag.
	AdminKey contextKey = "admin"
)

// LoadAdmin records in the request context whether the session marker
// cookie is present. Presence of the cookie — not its value — is what
// gates the admin view; that mirrors the product's existing contract and
// is flagged as an open question rather than hardened here. This
// middleware does not enforce anything by itself.
func LoadAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.Present(r) {
			ctx := context.WithValue(r.Context(), AdminKey, true)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose context lacks the admin flag.
// Must be applied after LoadAdmin in the middleware chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsAdmin reports whether the request was marked as admin-authenticated.
func IsAdmin(ctx context.Context) bool {
	flag, _ := ctx.Value(AdminKey).(bool)
	return flag
}
