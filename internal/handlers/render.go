package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/crucial707/todo-web/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names, matching files under templates/.
const (
	pageLogin          = "login.html"
	pageRegister       = "register.html"
	pageDashboard      = "dashboard.html"
	pageChangePassword = "change-password.html"
	pageForgotPassword = "forgot-password.html"
)

var pages = map[string]string{
	pageLogin:          "Log in",
	pageRegister:       "Register",
	pageDashboard:      "Dashboard",
	pageChangePassword: "Change password",
	pageForgotPassword: "Reset password",
}

// PageData is the value every template executes against.
type PageData struct {
	Title         string
	Message       string
	Authenticated bool
	Tasks         []models.Task
}

// ==========================
// Renderer
// ==========================

// Renderer holds one parsed template set per page, each combined with the layout.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page once. It fails if any template is malformed.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for name := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data PageData) {
	tmpl, ok := r.templates[name]
	if !ok {
		slog.ErrorContext(req.Context(), "unknown template", "name", name)
		InternalError(w)
		return
	}
	if data.Title == "" {
		data.Title = pages[name]
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.ErrorContext(req.Context(), "render template", "name", name, "err", err)
		InternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static serves the embedded stylesheet under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
