package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/views"
)

type homePage struct {
	views.HomeState
	SortKeys []pokedex.SortKey
}

type categoryButton struct {
	Name   string
	Href   string
	Active bool
}

type cardView struct {
	Name      string
	Status    string
	SpriteURL string
}

type galleryPage struct {
	Params     views.GalleryParams
	Categories []categoryButton
	Cards      []cardView
	Loading    bool
	SortKeys   []pokedex.SortKey
}

type detailPage struct {
	NotFound bool
	Loading  bool
	Entry    *pokedex.EntryDetail
	PrevID   int
	NextID   int
}

// Home renders the search page
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	q := r.URL.Query()
	st := s.Home.Update(r.Context(), views.HomeParams{
		Query:     q.Get("q"),
		Category:  strings.TrimSpace(q.Get("type")),
		SortBy:    pokedex.ParseSortKey(q.Get("sort")),
		SortOrder: pokedex.ParseSortOrder(q.Get("order")),
	})

	if err := h.render.page(w, r, http.StatusOK, "home", "Home", homePage{
		HomeState: st,
		SortKeys:  pokedex.SortKeys,
	}); err != nil {
		h.fail(w, r, err)
	}
}

// Gallery renders the catalog grid. Cards are rendered as placeholders
// that fetch themselves from /cards/{name}.
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	q := r.URL.Query()
	params := views.GalleryParams{
		Category:  strings.TrimSpace(q.Get("type")),
		SortOrder: pokedex.ParseSortOrder(q.Get("order")),
	}
	if raw := q.Get("sort"); raw != "" {
		params.SortBy = pokedex.ParseSortKey(raw)
	}

	st := s.Gallery.Select(r.Context(), params)

	data := galleryPage{
		Params:   st.Params,
		Loading:  st.Loading,
		SortKeys: pokedex.SortKeys,
	}
	for _, name := range st.Categories {
		data.Categories = append(data.Categories, categoryButton{
			Name:   name,
			Href:   galleryHref(name, st.Params),
			Active: name == st.Params.Category,
		})
	}
	for _, e := range st.Entries {
		data.Cards = append(data.Cards, cardView{
			Name:   e.Name,
			Status: views.StatusLoading.String(),
		})
	}

	if err := h.render.page(w, r, http.StatusOK, "gallery", "Gallery", data); err != nil {
		h.fail(w, r, err)
	}
}

func galleryHref(category string, p views.GalleryParams) string {
	v := url.Values{}
	v.Set("type", category)
	if p.SortBy != "" {
		v.Set("sort", string(p.SortBy))
		v.Set("order", string(p.SortOrder))
	}
	return "/gallery?" + v.Encode()
}

// Detail renders one entry with prev/next links
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	name := routeName(r)
	st := s.Detail.Show(r.Context(), name)

	data := detailPage{}
	status := http.StatusOK
	switch {
	case st.IsLoaded():
		out, _ := st.Value()
		data.Entry = out.Entry
		data.PrevID = out.PrevID
		data.NextID = out.NextID
	case st.IsFailed():
		// Every failure reads as "not found" to the visitor.
		data.NotFound = true
		status = errors.GetCode(st.Err()).HTTPStatus()
		slog.InfoContext(r.Context(), "detail unavailable", "name", name, "error", st.Err())
	default:
		data.Loading = true
	}

	if err := h.render.page(w, r, status, "detail", pokedex.DisplayName(name), data); err != nil {
		h.fail(w, r, err)
	}
}

// Card renders a single entry card fragment. The card lives for one request
// and is attached to exactly one name.
func (h *Handler) Card(w http.ResponseWriter, r *http.Request) {
	name := routeName(r)

	card := views.NewCard(h.entries)
	card.Attach(r.Context(), name)
	defer card.Detach()

	st := card.Wait(r.Context())
	data := cardView{Name: name, Status: st.Status().String()}
	if detail, ok := st.Value(); ok {
		data.SpriteURL = detail.SpriteURL
	}

	if err := h.render.fragment(w, http.StatusOK, "card", data); err != nil {
		h.fail(w, r, err)
	}
}

// routeName returns the unescaped {name} parameter
func routeName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
