// Package router sets up all HTTP routes and middleware chains for the
// menuboard server. It organizes routes into a public menu group and a
// cookie-gated admin group.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"menuboard/internal/handlers"
	"menuboard/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadAdmin)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Public menu API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", public.Categories)
		r.Get("/categories/{id}/products", public.ProductsByCategory)
		r.Get("/branches", public.Branches)
		r.Get("/menu/stream", public.MenuStream)
	})

	// Admin API — gated by the session marker cookie.
	r.Route("/admin/api", func(r chi.Router) {
		// Login/logout are reachable without the marker.
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoriesList)
				r.Post("/", admin.CategoryCreate)
				r.Put("/{id}", admin.CategoryUpdate)
				r.Delete("/{id}", admin.CategoryDelete)
				r.Post("/{id}/activate", admin.CategoryActivate)
				r.Post("/{id}/deactivate", admin.CategoryDeactivate)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", admin.ProductsList)
				r.Post("/", admin.ProductCreate)
				r.Put("/{id}", admin.ProductUpdate)
				r.Delete("/{id}", admin.ProductDelete)
				r.Post("/{id}/activate", admin.ProductActivate)
				r.Post("/{id}/deactivate", admin.ProductDeactivate)
			})

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", admin.BranchesList)
				r.Post("/", admin.BranchCreate)
				r.Put("/{id}", admin.BranchUpdate)
				r.Delete("/{id}", admin.BranchDelete)
				r.Post("/{id}/activate", admin.BranchActivate)
				r.Post("/{id}/deactivate", admin.BranchDeactivate)
			})

			r.Route("/uploads", func(r chi.Router) {
				r.Post("/", admin.UploadTarget)
				r.Post("/resolve", admin.UploadResolve)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
