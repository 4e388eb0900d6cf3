// Package authapi exposes the authentication core over HTTP as a mountable
// chi router: registration, login/logout, profile and the password-reset
// endpoints, with protected routes guarded by the authn middleware.
package authapi

import (
	"github.com/go-chi/chi/v5"

	"github.com/authkit/authkit/pkg/auth"
	"github.com/authkit/authkit/pkg/authn"
)

// Router builds the authentication surface. Public endpoints (status,
// register, login, password reset) are mounted outside the guard; profile
// and logout sit behind the authenticator middleware.
//
// Example:
//
//	guard, _ := authn.New(authnCfg, store, hasher)
//	r := chi.NewRouter()
//	r.Mount("/api/v1", authapi.Router(cfg, svc, guard))
func Router(cfg Config, svc *auth.Service, guard authn.Authenticator) chi.Router {
	if cfg.CookieName == "" {
		cfg.CookieName = authn.DefaultCookieName
	}

	h := &handlers{cfg: cfg, svc: svc}

	r := chi.NewRouter()

	r.Get("/status", h.status)
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/reset_password", h.forgotPassword)
	r.Put("/reset_password", h.resetPassword)

	r.Group(func(protected chi.Router) {
		protected.Use(authn.Middleware(guard))
		protected.Get("/profile", h.profile)
		protected.Delete("/logout", h.logout)
	})

	return r
}
