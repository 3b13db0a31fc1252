package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer renders the server-side pages. Each page template pulls in
// the shared "header" and "footer" blocks from layout.html.
type TemplateRenderer struct {
	t *template.Template
}

// NewTemplateRenderer parses the embedded page templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.New("root").Funcs(template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{t: t}, nil
}

// Render satisfies echo.Renderer.
func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}
