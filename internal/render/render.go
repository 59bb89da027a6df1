// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the storefront.
// Templates are embedded in the binary; each page template is paired with
// the base layout, except standalone auth pages which carry their own
// document shell.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"shopfront/internal/middleware"
	"shopfront/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Session   *session.Data  // Current shopper session (nil if anonymous)
	CSRFToken string         // CSRF token for forms
	Errors    []string       // Form validation errors, if any
	Data      map[string]any // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":    true,
	"register": true,
}

// New creates a Renderer by parsing all page templates from the embedded
// filesystem.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// price renders a fixed-point amount with two decimals.
			"price": func(d decimal.Decimal) string {
				return "$" + d.StringFixed(2)
			},
			// stars renders a 1-5 rating as filled/empty star glyphs.
			"stars": func(rating int) string {
				if rating < 1 {
					rating = 1
				}
				if rating > 5 {
					rating = 5
				}
				return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
			},
		},
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		// Strip .html extension for the template name.
		tmplName := name[:len(name)-len(".html")]

		var tmpl *template.Template
		var parseErr error

		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				templateFS, "templates/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				templateFS, "templates/base.html", "templates/"+name,
			)
		}

		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full page to the response writer, injecting session and
// CSRF token from the request context.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rn.render(w, r, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// RenderBytes renders a page into a byte slice instead of the response
// writer. Used by handlers that cache rendered pages.
func (rn *Renderer) RenderBytes(r *http.Request, name string, data *PageData) ([]byte, error) {
	var buf strings.Builder
	if err := rn.render(&buf, r, name, data); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

func (rn *Renderer) render(w io.Writer, r *http.Request, name string, data *PageData) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	if data == nil {
		data = &PageData{}
	}

	// Inject CSRF token from the cookie set by the CSRF middleware.
	if data.CSRFToken == "" {
		data.CSRFToken = middleware.GetCSRFToken(r)
	}

	// Inject session from context.
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	return tmpl.ExecuteTemplate(w, execName, data)
}
