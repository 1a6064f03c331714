package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/cart"
	"storefront/internal/forms"
	"storefront/internal/response"
	"storefront/internal/types"
)

var errEmptyCart = errors.New("your cart is empty")

type cartView struct {
	Id           string                 `json:"id"`
	Items        []cart.Line            `json:"items"`
	Count        int                    `json:"count"`
	Empty        bool                   `json:"empty"`
	Totals       cart.Totals            `json:"totals"`
	Notification *response.Notification `json:"notification,omitempty"`
}

func (h *handlers) view(id string, c cart.Cart, n *response.Notification) cartView {
	items := c.Lines
	if items == nil {
		items = make([]cart.Line, 0)
	}

	return cartView{
		Id:           id,
		Items:        items,
		Count:        c.Count(),
		Empty:        c.Empty(),
		Totals:       h.Pricing.Totals(c),
		Notification: n,
	}
}

func copies(n int) string {
	if n == 1 {
		return "1 copy"
	}

	return fmt.Sprintf("%d copies", n)
}

func addedToCart(b types.Book, qty int) *response.Notification {
	return &response.Notification{
		Title:       "Added to Cart",
		Description: fmt.Sprintf("%s of %q added to your cart.", copies(qty), b.Title),
	}
}

func removedFromCart(title string) *response.Notification {
	return &response.Notification{
		Title:       "Item Removed",
		Description: fmt.Sprintf("%q has been removed from your cart.", title),
	}
}

// addToCart is the book page button; with a cartId the copies really land in that cart
func (h *handlers) addToCart(w http.ResponseWriter, r *http.Request) {
	b, err := h.lookup(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req := struct {
		CartId string `json:"cartId"`
		forms.AddToCart
	}{AddToCart: forms.AddToCart{Quantity: 1}}

	if err = readJson(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err = h.Validator.Validate(&req.AddToCart); err != nil {
		h.fail(w, r, err)
		return
	}

	n := addedToCart(b, req.Quantity)

	if req.CartId == "" {
		h.Responder.SendJson(w, r.Context(), struct {
			Notification *response.Notification `json:"notification"`
		}{Notification: n})
		return
	}

	c, err := h.Carts.Update(req.CartId, func(c cart.Cart) (cart.Cart, error) {
		return c.Add(b, req.Quantity)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Responder.SendJson(w, r.Context(), h.view(req.CartId, c, n))
}

func (h *handlers) wishlist(w http.ResponseWriter, r *http.Request) {
	b, err := h.lookup(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req struct {
		Wishlisted bool `json:"wishlisted"`
	}
	if err = readJson(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	n := response.Notification{
		Title:       "Added to Wishlist",
		Description: fmt.Sprintf("%q added to your wishlist.", b.Title),
	}
	if req.Wishlisted {
		n = response.Notification{
			Title:       "Removed from Wishlist",
			Description: fmt.Sprintf("%q removed from your wishlist.", b.Title),
		}
	}

	h.Responder.SendJson(w, r.Context(), struct {
		Wishlisted   bool                  `json:"wishlisted"`
		Notification response.Notification `json:"notification"`
	}{
		Wishlisted:   !req.Wishlisted,
		Notification: n,
	})
}

func (h *handlers) createCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Demo bool `json:"demo"`
	}
	if err := readJson(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	var c cart.Cart
	if req.Demo || h.CartDemo {
		c = cart.Sample(h.Catalog.ByID)
	}

	id := h.Carts.Create(c)
	h.Logger.DebugContext(r.Context(), "Created cart "+id, "lines", len(c.Lines))

	h.Responder.SendJsonStatus(w, r.Context(), http.StatusCreated, h.view(id, c, nil))
}

func (h *handlers) getCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, ok := h.Carts.Get(id)
	if !ok {
		h.fail(w, r, cart.ErrUnknownCart)
		return
	}

	h.Responder.SendJson(w, r.Context(), h.view(id, c, nil))
}

// deleteCart discards a cart, e.g. when the shopper clears it or leaves
func (h *handlers) deleteCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.Carts.Get(id); !ok {
		h.fail(w, r, cart.ErrUnknownCart)
		return
	}

	h.Carts.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) addLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req := forms.AddToCart{Quantity: 1}
	if err := readJson(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.Validator.Validate(&req); err != nil {
		h.fail(w, r, err)
		return
	}

	b, ok := h.Catalog.ByID(req.BookId)
	if !ok {
		h.fail(w, r, fmt.Errorf("%w: %s", errBookNotFound, req.BookId))
		return
	}

	c, err := h.Carts.Update(id, func(c cart.Cart) (cart.Cart, error) {
		return c.Add(b, req.Quantity)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Responder.SendJson(w, r.Context(), h.view(id, c, addedToCart(b, req.Quantity)))
}

func (h *handlers) setQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bookId := chi.URLParam(r, "bookId")

	var req forms.SetQuantity
	if err := readJson(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.Validator.Validate(&req); err != nil {
		h.fail(w, r, err)
		return
	}

	var n *response.Notification
	c, err := h.Carts.Update(id, func(c cart.Cart) (cart.Cart, error) {
		if line, ok := c.Line(bookId); ok && *req.Quantity == 0 {
			n = removedFromCart(line.Title)
		}
		return c.SetQuantity(bookId, *req.Quantity)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Responder.SendJson(w, r.Context(), h.view(id, c, n))
}

func (h *handlers) removeLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bookId := chi.URLParam(r, "bookId")

	var n *response.Notification
	c, err := h.Carts.Update(id, func(c cart.Cart) (cart.Cart, error) {
		if line, ok := c.Line(bookId); ok {
			n = removedFromCart(line.Title)
		}
		return c.Remove(bookId)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Responder.SendJson(w, r.Context(), h.view(id, c, n))
}

// checkout only acknowledges; there is no payment or order placement
func (h *handlers) checkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, ok := h.Carts.Get(id)
	if !ok {
		h.fail(w, r, cart.ErrUnknownCart)
		return
	}

	if c.Empty() {
		h.fail(w, r, errEmptyCart)
		return
	}

	h.Responder.SendJson(w, r.Context(), h.view(id, c, &response.Notification{
		Title:       "Checkout",
		Description: "Checkout functionality will be implemented soon!",
	}))
}
