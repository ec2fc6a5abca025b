// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests needing PostgreSQL are skipped when it is
// unavailable.
package handlers

import (
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"menuboard/internal/auth"
	"menuboard/internal/database"
	"menuboard/internal/menu"
	"menuboard/internal/middleware"
	"menuboard/internal/reactive"
	"menuboard/internal/session"
	"menuboard/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "menuboard")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "menuboard")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB     *sql.DB
	Svc    *menu.Service
	Admin  *Admin
	Auth   *Auth
	Public *Public
	Router chi.Router
}

// newTestEnv creates a complete test environment. The router mirrors
// the production route layout so auth gating is exercised too. Object
// storage is left unconfigured and change events stay in-process.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	svc := menu.NewService(
		store.NewCategoryStore(db),
		store.NewProductStore(db),
		store.NewBranchStore(db),
		nil,
		reactive.NewMemoryBroker(),
	)

	env := &testEnv{
		DB:     db,
		Svc:    svc,
		Admin:  NewAdmin(svc),
		Auth:   NewAuth(auth.NewStaticVerifier("admin", "secret", "")),
		Public: NewPublic(svc),
	}

	r := chi.NewRouter()
	r.Use(middleware.LoadAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", env.Public.Categories)
		r.Get("/categories/{id}/products", env.Public.ProductsByCategory)
		r.Get("/branches", env.Public.Branches)
	})

	r.Route("/admin/api", func(r chi.Router) {
		r.Post("/login", env.Auth.Login)
		r.Post("/logout", env.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", env.Admin.CategoriesList)
				r.Post("/", env.Admin.CategoryCreate)
				r.Put("/{id}", env.Admin.CategoryUpdate)
				r.Delete("/{id}", env.Admin.CategoryDelete)
				r.Post("/{id}/activate", env.Admin.CategoryActivate)
				r.Post("/{id}/deactivate", env.Admin.CategoryDeactivate)
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", env.Admin.ProductsList)
				r.Post("/", env.Admin.ProductCreate)
				r.Put("/{id}", env.Admin.ProductUpdate)
				r.Delete("/{id}", env.Admin.ProductDelete)
			})
			r.Route("/uploads", func(r chi.Router) {
				r.Post("/", env.Admin.UploadTarget)
				r.Post("/resolve", env.Admin.UploadResolve)
			})
		})
	})

	env.Router = r
	return env
}

// adminCookie returns the session marker cookie an admin request carries.
func adminCookie() *http.Cookie {
	return &http.Cookie{Name: session.CookieName, Value: "admin"}
}

// cleanByName deletes test rows by exact name, before and after the test.
func cleanByName(t *testing.T, db *sql.DB, table string, names ...string) {
	t.Helper()
	del := func() {
		for _, n := range names {
			db.Exec("DELETE FROM "+table+" WHERE name = $1", n)
		}
	}
	del()
	t.Cleanup(del)
}
