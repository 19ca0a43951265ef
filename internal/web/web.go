// Package web holds the server-rendered pages and their static assets.
package web

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

//go:embed all:dist
var webDist embed.FS

// Renderer renders the embedded page templates for echo.
type Renderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses every page under dist.
func NewRenderer() (*Renderer, error) {
	build, err := fs.Sub(webDist, "dist")
	if err != nil {
		return nil, err
	}
	t, err := parseTemplates(build, FuncMap())
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render executes page name, where name omits the ".html" suffix.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	if err := r.templates.ExecuteTemplate(w, name+".html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Assets returns the static files (stylesheets) served next to the pages.
func Assets() fs.FS {
	sub, err := fs.Sub(webDist, "dist/assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// FuncMap is available to every page.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"renderOptionTag": renderOptionTag,
		"money":           money,
	}
}

func parseTemplates(root fs.FS, funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("")
	err := fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}
		contents, err := fs.ReadFile(root, p)
		if err != nil {
			return err
		}
		_, err = t.New(p).Delims("[[", "]]").Funcs(funcMap).Parse(string(contents))
		return err
	})
	return t, err
}

func renderOptionTag(value, display, selectedValue string) template.HTML {
	var selectedParam string
	if value == selectedValue {
		selectedParam = " selected"
	}
	return template.HTML("<option value=\"" + html.EscapeString(value) + "\"" + selectedParam + ">" + html.EscapeString(display) + "</option>")
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
