// Package web reúne lo que comparten los handlers HTML: plantillas,
// navegación "back", lectura de formularios y respuestas de error.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"vet-clinic/internal/platform/dates"
)

//go:embed templates
var templatesFS embed.FS

// Pages son las vistas disponibles; cada una se parsea junto al layout.
var Pages = []string{
	"home",
	"clients/index",
	"clients/form",
	"clients/view",
	"pets/index",
	"pets/form",
	"pets/view",
	"visits/form",
	"journal/index",
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"dateView": dates.ToDisplay,
		"lines": func(s string) []string {
			return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
		},
	}

	rd := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, p := range Pages {
		t, err := template.New("layout").Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			"templates/"+p+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p, err)
		}
		rd.pages[p] = t
	}
	return rd, nil
}

// HTML renderiza page con data. Se ejecuta a un buffer para que un error
// de plantilla termine en 500 y no en una página a medias.
func (rd *Renderer) HTML(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, ok := rd.pages[page]
	if !ok {
		ServerError(w, r, fmt.Errorf("unknown page %q", page))
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		ServerError(w, r, fmt.Errorf("render %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
