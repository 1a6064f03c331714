package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/carousel"
	"storefront/internal/catalog"
	"storefront/internal/opds"
	"storefront/internal/types"
)

var errBookNotFound = errors.New("book not found")

type queryEcho struct {
	Text       string             `json:"q,omitempty"`
	Categories []string           `json:"categories"`
	PriceRange catalog.PriceRange `json:"priceRange"`
	Sort       catalog.SortMode   `json:"sort"`
}

type queryResult struct {
	Books []types.Book `json:"books"`
	Total int          `json:"total"`
	Query queryEcho    `json:"query"`
}

func (h *handlers) query(screen catalog.Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := parseSpec(screen, r.URL.Query())
		if err != nil {
			h.fail(w, r, err)
			return
		}

		rows := h.Catalog.Query(spec)

		categories := spec.Categories
		if categories == nil {
			categories = make([]string, 0)
		}

		h.Responder.SendJson(w, r.Context(), queryResult{
			Books: rows,
			Total: len(rows),
			Query: queryEcho{
				Text:       spec.Text,
				Categories: categories,
				PriceRange: spec.PriceRange,
				Sort:       spec.Sort,
			},
		})
	}
}

func (h *handlers) browse(w http.ResponseWriter, r *http.Request) {
	h.query(catalog.ScreenBrowse)(w, r)
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	h.query(catalog.ScreenSearch)(w, r)
}

func (h *handlers) lookup(r *http.Request, param string) (types.Book, error) {
	id := chi.URLParam(r, param)

	b, ok := h.Catalog.ByID(id)
	if !ok {
		return types.Book{}, fmt.Errorf("%w: %s", errBookNotFound, id)
	}

	return b, nil
}

func (h *handlers) book(w http.ResponseWriter, r *http.Request) {
	b, err := h.lookup(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Responder.SendJson(w, r.Context(), struct {
		Book            types.Book   `json:"book"`
		DiscountPercent int          `json:"discountPercent"`
		Related         []types.Book `json:"related"`
	}{
		Book:            b,
		DiscountPercent: b.DiscountPercent(),
		Related:         h.Catalog.Related(b.Id, relatedLimit),
	})
}

func (h *handlers) share(w http.ResponseWriter, r *http.Request) {
	b, err := h.lookup(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Responder.SendJson(w, r.Context(), struct {
		Title string `json:"title"`
		Text  string `json:"text"`
		Url   string `json:"url"`
	}{
		Title: b.Title,
		Text:  fmt.Sprintf("Check out %q by %s", b.Title, b.Author),
		Url:   h.Feeds.PageUrl(b.Id),
	})
}

func (h *handlers) categories(w http.ResponseWriter, r *http.Request) {
	h.Responder.SendJson(w, r.Context(), struct {
		Categories []catalog.CategoryCount `json:"categories"`
	}{
		Categories: h.Catalog.Facets(h.Catalog.All()).Categories,
	})
}

func (h *handlers) filters(w http.ResponseWriter, r *http.Request) {
	h.Responder.SendJson(w, r.Context(), struct {
		catalog.Facets
		DefaultPriceRange catalog.PriceRange            `json:"defaultPriceRange"`
		SortModes         map[string][]catalog.SortMode `json:"sortModes"`
	}{
		Facets:            h.Catalog.Facets(h.Catalog.All()),
		DefaultPriceRange: catalog.DefaultPriceRange,
		SortModes: map[string][]catalog.SortMode{
			"browse": catalog.ScreenBrowse.SortModes(),
			"search": catalog.ScreenSearch.SortModes(),
		},
	})
}

type shelfView struct {
	Name    string          `json:"name"`
	Books   []types.Book    `json:"books"`
	Window  carousel.Window `json:"window"`
	Prev    int             `json:"prev"`
	Next    int             `json:"next"`
	Advance int             `json:"advance"`
}

func (h *handlers) shelfBooks(name string) ([]types.Book, bool) {
	switch name {
	case "featured":
		return h.Catalog.Featured(), true
	case "bestsellers":
		return h.Catalog.Bestsellers(), true
	case "new-releases":
		return h.Catalog.NewReleases(), true
	}

	return nil, false
}

// makeShelf cuts the visible part of a shelf; all keeps the whole shelf in the response
func makeShelf(name string, books []types.Book, width, index int, all bool) shelfView {
	w := carousel.New(len(books), carousel.ItemsToShow(width)).At(index)

	visible := books
	if !all {
		from, to := w.Bounds()
		visible = books[from:to]
	}

	return shelfView{
		Name:    name,
		Books:   visible,
		Window:  w,
		Prev:    w.Prev().Index,
		Next:    w.Next().Index,
		Advance: w.Advance().Index,
	}
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width := getIntOrDefault("width", q, 1024)

	featured, _ := h.shelfBooks("featured")
	bestsellers, _ := h.shelfBooks("bestsellers")
	newReleases, _ := h.shelfBooks("new-releases")

	categories := h.Catalog.Categories()
	if len(categories) > homeShelfSize {
		categories = categories[:homeShelfSize]
	}

	shelves := []shelfView{
		makeShelf("featured", featured, width, h.Carousel.Position(), true),
		makeShelf("bestsellers", bestsellers, width, 0, true),
	}
	if len(newReleases) > 0 {
		shelves = append(shelves, makeShelf("new-releases", newReleases, width, 0, true))
	}

	h.Responder.SendJson(w, r.Context(), struct {
		Shelves    []shelfView `json:"shelves"`
		Categories []string    `json:"categories"`
	}{
		Shelves:    shelves,
		Categories: categories,
	})
}

func (h *handlers) shelf(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "shelf")

	books, ok := h.shelfBooks(name)
	if !ok {
		h.Responder.RespondClientError(w, r.Context(), http.StatusNotFound, "unknown shelf "+name, nil)
		return
	}

	q := r.URL.Query()

	index := h.Carousel.Position()
	if name != "featured" || q.Has("index") {
		index = getIntOrDefault("index", q, 0)
	}

	h.Responder.SendJson(w, r.Context(), makeShelf(name, books, getIntOrDefault("width", q, 1024), index, false))
}

func (h *handlers) opdsFeed(w http.ResponseWriter, r *http.Request) {
	spec, err := parseSpec(catalog.ScreenBrowse, r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rows := h.Catalog.Query(spec)

	bs, err := opds.Marshal(h.Feeds.Feed("Bookstore catalog: "+opds.Count(len(rows)), r.URL, rows))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", opds.ContentType)
	_, _ = w.Write(bs)
}
