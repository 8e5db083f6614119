package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/bookbazaar/bookbazaar-api/internal/api/middleware"
	"github.com/bookbazaar/bookbazaar-api/internal/domain"
)

// RouterDeps bundles the handlers and middleware the router mounts.
type RouterDeps struct {
	Auth   *AuthHandler
	Books  *BookHandler
	Orders *OrderHandler
	Admin  *AdminHandler
	JWT    *middleware.AuthMiddleware
}

// NewRouter assembles the application's HTTP routes.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Trace)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", deps.Auth.Register)
		r.Post("/auth/login", deps.Auth.Login)

		r.Get("/books", deps.Books.List)
		r.Get("/books/{id}", deps.Books.Get)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(deps.JWT.Authenticate)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleSeller, domain.RoleAdmin))
				r.Post("/books", deps.Books.Create)
			})

			r.Post("/orders", deps.Orders.Place)
			r.Get("/orders", deps.Orders.History)
			r.Get("/orders/{id}", deps.Orders.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Get("/admin/dashboard", deps.Admin.Dashboard)
			})
		})
	})

	return r
}
