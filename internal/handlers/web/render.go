package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageNames = []string{"home", "gallery", "detail"}

var funcMap = template.FuncMap{
	"pathEscape":  url.PathEscape,
	"displayName": pokedex.DisplayName,
	"join":        strings.Join,
	"upper":       strings.ToUpper,
}

// page is the data handed to the base layout
type page struct {
	Title   string
	Page    string
	Nav     []RenderedNavItem
	Content any
}

type renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

// newRenderer parses the layout once and clones it per page, since every
// page defines its own "content" block.
func newRenderer() (*renderer, error) {
	layout, err := template.New("layout").Funcs(funcMap).
		ParseFS(templateFS, "templates/layout.tmpl", "templates/card.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse layout templates")
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := layout.Clone()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to clone layout for %s", name)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".tmpl"); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s template", name)
		}
		pages[name] = t
	}

	return &renderer{pages: pages, fragments: layout}, nil
}

func (rd *renderer) page(w http.ResponseWriter, r *http.Request, status int, name, title string, content any) error {
	t, ok := rd.pages[name]
	if !ok {
		return errors.Internalf("unknown page %s", name)
	}

	return write(w, status, t, "base", page{
		Title:   title,
		Page:    name,
		Nav:     BuildNav(r.URL.Path),
		Content: content,
	})
}

func (rd *renderer) fragment(w http.ResponseWriter, status int, name string, data any) error {
	return write(w, status, rd.fragments, name, data)
}

// write renders into a buffer first so a template error still yields a clean 500
func write(w http.ResponseWriter, status int, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrapf(err, "failed to execute %s", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
