package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names understood by Renderer.Page.
const (
	PageDashboard = "page_dashboard"
	PageLoading   = "page_loading"
	PageSignIn    = "page_signin"
	PageSignUp    = "page_signup"

	fragmentDashboard = "dashboard_body"
)

// AuthPage is the model of the sign-in and sign-up pages.
type AuthPage struct {
	Email   string
	Name    string
	Error   string
	Enabled bool
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view.NewRenderer: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page renders a full page into w. The output is buffered so a template
// error never leaves a half-written response.
func (r *Renderer) Page(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("view.Page %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Fragment renders the dashboard body for live replacement.
func (r *Renderer) Fragment(d Dashboard) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, fragmentDashboard, d); err != nil {
		return "", fmt.Errorf("view.Fragment: %w", err)
	}
	return buf.String(), nil
}
