// Package cart is the storefront's in-memory shopping cart: a pure reducer over line items,
// its price summary and a session store that forgets idle carts.
package cart

import (
	"errors"
	"math"

	"storefront/internal/types"
)

var (
	ErrUnknownLine     = errors.New("book is not in the cart")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrUnknownCart     = errors.New("cart not found")
)

type Line struct {
	BookId            string   `json:"bookId"`
	Title             string   `json:"title"`
	Author            string   `json:"author"`
	Image             string   `json:"image"`
	UnitPrice         float64  `json:"price"`
	OriginalUnitPrice *float64 `json:"originalPrice,omitempty"`
	Quantity          int      `json:"quantity"`
}

// Cart values are never modified in place, every operation returns a new one.
type Cart struct {
	Lines []Line `json:"items"`
}

func lineFor(b types.Book, qty int) Line {
	var orig *float64
	if b.Discounted() {
		orig = types.Price(*b.OriginalPrice)
	}

	return Line{
		BookId:            b.Id,
		Title:             b.Title,
		Author:            b.Author,
		Image:             b.Image,
		UnitPrice:         b.Price,
		OriginalUnitPrice: orig,
		Quantity:          qty,
	}
}

func (c Cart) clone() Cart {
	return Cart{Lines: append(make([]Line, 0, len(c.Lines)+1), c.Lines...)}
}

func (c Cart) index(bookId string) int {
	for ix := range c.Lines {
		if c.Lines[ix].BookId == bookId {
			return ix
		}
	}

	return -1
}

func (c Cart) Line(bookId string) (Line, bool) {
	ix := c.index(bookId)
	if ix < 0 {
		return Line{}, false
	}

	return c.Lines[ix], true
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Count is the number of copies in the cart
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}

	return n
}

// Add puts qty copies of b into the cart, merging with an existing line for the same book
func (c Cart) Add(b types.Book, qty int) (Cart, error) {
	if qty <= 0 {
		return c, ErrInvalidQuantity
	}

	ret := c.clone()
	if ix := ret.index(b.Id); ix >= 0 {
		ret.Lines[ix].Quantity += qty
		return ret, nil
	}

	ret.Lines = append(ret.Lines, lineFor(b, qty))
	return ret, nil
}

// SetQuantity replaces the quantity of a line; zero or less removes the line
func (c Cart) SetQuantity(bookId string, qty int) (Cart, error) {
	ix := c.index(bookId)
	if ix < 0 {
		return c, ErrUnknownLine
	}

	if qty <= 0 {
		return c.Remove(bookId)
	}

	ret := c.clone()
	ret.Lines[ix].Quantity = qty
	return ret, nil
}

func (c Cart) Remove(bookId string) (Cart, error) {
	ix := c.index(bookId)
	if ix < 0 {
		return c, ErrUnknownLine
	}

	ret := Cart{Lines: make([]Line, 0, len(c.Lines)-1)}
	ret.Lines = append(ret.Lines, c.Lines[:ix]...)
	ret.Lines = append(ret.Lines, c.Lines[ix+1:]...)
	return ret, nil
}

// Pricing holds the shipping policy; amounts are in the store currency.
type Pricing struct {
	FreeShippingThreshold float64
	ShippingFee           float64
}

var DefaultPricing = Pricing{FreeShippingThreshold: 25, ShippingFee: 5.99}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Savings  float64 `json:"savings"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
	// FreeShippingRemaining is how much more must be spent to get free shipping
	FreeShippingRemaining float64 `json:"freeShippingRemaining"`
}

func (p Pricing) Totals(c Cart) Totals {
	var t Totals
	for _, l := range c.Lines {
		qty := float64(l.Quantity)
		t.Subtotal += l.UnitPrice * qty
		if l.OriginalUnitPrice != nil {
			t.Savings += (*l.OriginalUnitPrice - l.UnitPrice) * qty
		}
	}

	t.Subtotal = cents(t.Subtotal)
	t.Savings = cents(t.Savings)

	if t.Subtotal < p.FreeShippingThreshold {
		t.Shipping = p.ShippingFee
		t.FreeShippingRemaining = cents(p.FreeShippingThreshold - t.Subtotal)
	}

	t.Total = cents(t.Subtotal + t.Shipping)

	return t
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}
