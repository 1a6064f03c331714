// Package catalog holds the read-only book table and the query engine shared by the browse and search screens.
package catalog

import (
	"errors"
	"fmt"
	"math"

	"storefront/internal/types"
)

var ErrDuplicateBook = errors.New("duplicate book id")

// Catalog is constructed once and never mutated, so it can be shared by concurrent readers.
type Catalog struct {
	books      []types.Book
	byId       map[string]int
	categories []string
}

func New(books []types.Book, categories []string) (*Catalog, error) {
	c := &Catalog{
		books:      make([]types.Book, 0, len(books)),
		byId:       make(map[string]int, len(books)),
		categories: make([]string, 0, len(categories)),
	}

	seenCategory := make(map[string]struct{}, len(categories))
	addCategory := func(name string) {
		if _, ok := seenCategory[name]; ok || name == "" {
			return
		}
		seenCategory[name] = struct{}{}
		c.categories = append(c.categories, name)
	}

	for _, name := range categories {
		addCategory(name)
	}

	for _, b := range books {
		if err := b.Validate(); err != nil {
			return nil, err
		}

		if _, ok := c.byId[b.Id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBook, b.Id)
		}

		if b.OriginalPrice != nil {
			b.OriginalPrice = types.Price(*b.OriginalPrice)
		}

		c.byId[b.Id] = len(c.books)
		c.books = append(c.books, b)
		addCategory(b.Category)
	}

	return c, nil
}

// All returns a copy of every book in catalog order
func (c *Catalog) All() []types.Book {
	return c.filter(func(*types.Book) bool { return true }, -1)
}

func (c *Catalog) Len() int {
	return len(c.books)
}

func (c *Catalog) ByID(id string) (types.Book, bool) {
	ix, ok := c.byId[id]
	if !ok {
		return types.Book{}, false
	}

	return c.books[ix], true
}

func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

func (c *Catalog) Query(spec Spec) []types.Book {
	return Query(c.books, spec)
}

func (c *Catalog) Featured() []types.Book {
	return c.filter(func(b *types.Book) bool { return b.Featured }, -1)
}

func (c *Catalog) Bestsellers() []types.Book {
	return c.filter(func(b *types.Book) bool { return b.Bestseller }, -1)
}

func (c *Catalog) NewReleases() []types.Book {
	return c.filter(func(b *types.Book) bool { return b.NewRelease }, -1)
}

// Related returns up to limit other books from the same category as id
func (c *Catalog) Related(id string, limit int) []types.Book {
	book, ok := c.ByID(id)
	if !ok {
		return []types.Book{}
	}

	return c.filter(func(b *types.Book) bool {
		return b.Category == book.Category && b.Id != book.Id
	}, limit)
}

func (c *Catalog) filter(pred func(b *types.Book) bool, limit int) []types.Book {
	ret := make([]types.Book, 0)
	for ix := range c.books {
		if limit >= 0 && len(ret) >= limit {
			break
		}
		if pred(&c.books[ix]) {
			ret = append(ret, c.books[ix])
		}
	}

	return ret
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Facets struct {
	Categories []CategoryCount `json:"categories"`
	// Prices spans the cheapest and the most expensive book, zero when there are no books
	Prices PriceRange `json:"prices"`
}

// Facets counts books per catalog category (including empty ones) and spans their prices
func (c *Catalog) Facets(books []types.Book) Facets {
	counts := make(map[string]int, len(c.categories))
	prices := PriceRange{Min: math.Inf(1), Max: math.Inf(-1)}

	for _, b := range books {
		counts[b.Category]++
		prices.Min = math.Min(prices.Min, b.Price)
		prices.Max = math.Max(prices.Max, b.Price)
	}

	if len(books) == 0 {
		prices = PriceRange{}
	}

	f := Facets{Categories: make([]CategoryCount, 0, len(c.categories)), Prices: prices}
	for _, name := range c.categories {
		f.Categories = append(f.Categories, CategoryCount{Name: name, Count: counts[name]})
	}

	return f
}
