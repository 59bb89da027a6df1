// Package router sets up all HTTP routes and middleware chains for the
// storefront. It organizes routes into public, auth, and account groups
// with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shopfront/internal/handlers"
	"shopfront/internal/middleware"
	"shopfront/internal/session"
	"shopfront/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, shop *handlers.Shop, carts *handlers.Cart, auth *handlers.Auth, account *handlers.Account) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check; no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets (item images).
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public catalog.
	r.Get("/", shop.Home)
	r.Get("/shop", shop.List)
	r.Get("/item/{id}", shop.ItemDetail)

	// Auth forms — CSRF-protected and rate-limited against credential
	// guessing. The limiter lives for the life of the process.
	authLimiter := middleware.NewRateLimiter(20, time.Minute)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(authLimiter.Middleware)

		r.Get("/register", auth.RegisterPage)
		r.Post("/register", auth.RegisterSubmit)
		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Post("/logout", auth.Logout)
	})

	// Authenticated shopper area.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAuth)

		r.Get("/dashboard", account.Dashboard)

		r.Post("/review/{item_id}", shop.SubmitReview)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.View)
			r.Get("/add/{item_id}", carts.Add)
			r.Post("/update", carts.Update)
			r.Get("/remove/{item_id}", carts.Remove)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Post("/add/{item_id}", account.WishlistAdd)
			r.Post("/remove/{item_id}", account.WishlistRemove)
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
