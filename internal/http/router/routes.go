// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authctrl "github.com/dropDatabas3/punkauth/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/punkauth/internal/http/controllers/health"
	usersctrl "github.com/dropDatabas3/punkauth/internal/http/controllers/users"
	httperrors "github.com/dropDatabas3/punkauth/internal/http/errors"
	mw "github.com/dropDatabas3/punkauth/internal/http/middlewares"
	"github.com/dropDatabas3/punkauth/internal/metrics"
	"github.com/dropDatabas3/punkauth/internal/security/blacklist"
)

// Deps contiene todo lo necesario para armar el router.
type Deps struct {
	Auth   *authctrl.Controllers
	Users  *usersctrl.Controllers
	Health *healthctrl.Controller

	// Secrets de los authenticators.
	AccessSecret  []byte
	RefreshSecret []byte
	Blacklist     *blacklist.Blacklist
}

// New construye el router chi con todas las rutas y middlewares.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	// Middlewares globales: recover primero (el más externo).
	r.Use(mw.WithRecover())
	r.Use(mw.WithRequestID())
	r.Use(mw.WithSecurityHeaders())
	r.Use(mw.WithLogging())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	// Rutas de auth: todas devuelven (o tocan) tokens, siempre no-store.
	r.Route("/auth", func(r chi.Router) {
		r.Use(mw.WithNoStore())

		r.Post("/signup", d.Auth.Signup.Signup)
		r.Post("/login", d.Auth.Login.Login)
		r.With(mw.WithRefreshAuth(d.RefreshSecret, d.Blacklist)).
			Post("/refresh", d.Auth.Refresh.Refresh)
		r.Post("/forgot-password", d.Auth.PasswordReset.Forgot)
		r.Patch("/reset-password", d.Auth.PasswordReset.Reset)

		// Logout lee el bearer por su cuenta: un token vencido también se
		// desloguea (no-op), así que no pasa por el authenticator.
		r.Post("/logout", d.Auth.Logout.Logout)
	})

	r.Route("/users", func(r chi.Router) {
		// Pública: el token del mail es la credencial.
		r.With(mw.WithNoStore()).Post("/verify-email", d.Users.Verify.Confirm)

		r.Group(func(r chi.Router) {
			r.Use(mw.WithAccessAuth(d.AccessSecret, d.Blacklist))

			r.Get("/{id}", d.Users.Profile.Get)
			r.Patch("/{id}", d.Users.Profile.Update)
			r.Delete("/{id}", d.Users.Profile.Delete)
			r.Patch("/{id}/password", d.Users.Profile.ChangePassword)
			r.Get("/{id}/verify", d.Users.Verify.Send)
		})
	})

	r.Get("/healthz", d.Health.Healthz)
	r.Get("/readyz", d.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
