package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/todo-web/internal/handlers"
	"github.com/crucial707/todo-web/internal/middleware"
)

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Auth     *handlers.AuthHandler
	Tasks    *handlers.TaskHandler
	Sessions middleware.UserResolver

	// SecureCookies adds HSTS; set when served over HTTPS.
	SecureCookies bool
}

// NewRouter builds the full HTTP surface.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// ==========================
	// Middleware
	// ==========================
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(d.SecureCookies))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxFormBytes))

	// ==========================
	// Ops
	// ==========================
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", handlers.Static())

	// ==========================
	// Public
	// ==========================
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
	r.Get("/login", d.Auth.LoginForm)
	r.Post("/login", d.Auth.LoginSubmit)
	r.Get("/register", d.Auth.RegisterForm)
	r.Post("/register", d.Auth.RegisterSubmit)
	r.Get("/forgot-password", d.Auth.ForgotPasswordForm)
	r.Post("/forgot-password", d.Auth.ForgotPasswordSubmit)
	r.Get("/logout", d.Auth.Logout)

	// ==========================
	// Session required
	// ==========================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(d.Sessions))

		r.Get("/dashboard", d.Tasks.Dashboard)
		r.Post("/add", d.Tasks.Add)
		r.Post("/toggle", d.Tasks.Toggle)
		r.Post("/delete", d.Tasks.Delete)
		r.Get("/change-password", d.Auth.ChangePasswordForm)
		r.Post("/change-password", d.Auth.ChangePasswordSubmit)
	})

	return r
}
