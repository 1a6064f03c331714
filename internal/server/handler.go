package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront/internal/cart"
	"storefront/internal/carousel"
	"storefront/internal/catalog"
	"storefront/internal/forms"
	"storefront/internal/opds"
	"storefront/internal/ratelimit"
	"storefront/internal/response"
)

const (
	relatedLimit  = 4
	homeShelfSize = 10
	maxBodyBytes  = 1 << 20
)

type Deps struct {
	Catalog   *catalog.Catalog
	Carts     *cart.Store
	Pricing   cart.Pricing
	CartDemo  bool
	Carousel  *carousel.Ticker
	Feeds     *opds.Builder
	Limiter   *ratelimit.Limiter
	Validator *forms.Validator
	Responder *response.Responder
	Logger    *slog.Logger
}

type handlers struct {
	Deps
}

func Handler(d Deps) http.Handler {
	h := &handlers{Deps: d}
	rr := d.Responder

	r := chi.NewRouter()
	r.Use(AccessLog(d.Logger))

	r.Get("/books", h.browse)
	r.Get("/search", h.search)
	r.Get("/books/{id}", h.book)
	r.Get("/books/{id}/share", h.share)
	r.Get("/categories", h.categories)
	r.Get("/filters", h.filters)
	r.Get("/home", h.home)
	r.Get("/shelves/{shelf}", h.shelf)
	r.Get("/opds", h.opdsFeed)
	r.Get("/carts/{id}", h.getCart)

	r.Group(func(r chi.Router) {
		r.Use(d.Limiter.Middleware(func(w http.ResponseWriter, r *http.Request) {
			rr.RespondClientError(w, r.Context(), http.StatusTooManyRequests, "too many requests, please slow down", nil)
		}))

		r.Post("/books/{id}/cart", h.addToCart)
		r.Post("/books/{id}/wishlist", h.wishlist)

		r.Post("/carts", h.createCart)
		r.Post("/carts/{id}/lines", h.addLine)
		r.Put("/carts/{id}/lines/{bookId}", h.setQuantity)
		r.Delete("/carts/{id}/lines/{bookId}", h.removeLine)
		r.Post("/carts/{id}/checkout", h.checkout)
		r.Delete("/carts/{id}", h.deleteCart)

		r.Post("/contact", h.contact)
		r.Post("/newsletter", h.newsletter)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rr.RespondClientError(w, r.Context(), http.StatusNotFound, "not found", nil)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rr.RespondClientError(w, r.Context(), http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}

var errBadRequest = errors.New("bad request")

// readJson decodes an optional JSON body into dst; an empty body leaves dst untouched
func readJson(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	return fmt.Errorf("%w: malformed JSON body: %s", errBadRequest, err.Error())
}

func getFloatOrDefault(key string, q url.Values, default_ float64) (float64, error) {
	if s := strings.TrimSpace(q.Get(key)); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %s must be a number", errBadRequest, key)
		}
		return v, nil
	}

	return default_, nil
}

func getIntOrDefault(key string, q url.Values, default_ int) int {
	if ls := q.Get(key); ls != "" {
		v, err := strconv.Atoi(ls)
		if err == nil {
			return v
		}
	}

	return default_
}

func getMulti(key string, q url.Values) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}

	vals := make([]string, 0, len(raw))
	for _, val := range raw {
		for _, part := range strings.Split(val, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				vals = append(vals, part)
			}
		}
	}

	return vals
}

// parseSpec builds the query of a screen from URL parameters, starting from the screen defaults
func parseSpec(screen catalog.Screen, q url.Values) (catalog.Spec, error) {
	spec := catalog.DefaultSpec(screen)

	if screen == catalog.ScreenSearch {
		spec.Text = q.Get("q")
	}

	spec.Categories = getMulti("category", q)

	var err error
	if spec.PriceRange.Min, err = getFloatOrDefault("price_min", q, spec.PriceRange.Min); err != nil {
		return spec, err
	}
	if spec.PriceRange.Max, err = getFloatOrDefault("price_max", q, spec.PriceRange.Max); err != nil {
		return spec, err
	}

	if s := q.Get("sort"); s != "" {
		mode, err := catalog.ParseSortMode(s)
		if err != nil || !screen.Allows(mode) {
			return spec, fmt.Errorf("%w: sort must be one of %s", errBadRequest, joinModes(screen.SortModes()))
		}
		spec.Sort = mode
	}

	return spec, nil
}

func joinModes(modes []catalog.SortMode) string {
	ss := make([]string, 0, len(modes))
	for _, m := range modes {
		ss = append(ss, string(m))
	}

	return strings.Join(ss, ", ")
}

// fail maps an error to a response: request problems and domain errors become 4xx, the rest 500
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	var formErr *forms.Error

	switch {
	case errors.As(err, &formErr):
		h.Responder.SendJsonStatus(w, r.Context(), http.StatusUnprocessableEntity, struct {
			Error        string                `json:"error"`
			Fields       map[string]string     `json:"fields"`
			Notification response.Notification `json:"notification"`
		}{
			Error:  formErr.Error(),
			Fields: formErr.Fields,
			Notification: response.Notification{
				Title:       "Missing Information",
				Description: "Please fill in all required fields.",
				Destructive: true,
			},
		})
	case errors.Is(err, errBadRequest):
		h.Responder.RespondClientError(w, r.Context(), http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, errBookNotFound), errors.Is(err, cart.ErrUnknownCart), errors.Is(err, cart.ErrUnknownLine):
		h.Responder.RespondClientError(w, r.Context(), http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, errEmptyCart):
		h.Responder.RespondClientError(w, r.Context(), http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		h.Responder.RespondAndLogError(w, r.Context(), err)
	}
}
