package catalog

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront/internal/types"
)

type SortMode string

const (
	SortTitle     SortMode = "title"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
	SortRating    SortMode = "rating"
	SortNewest    SortMode = "newest"
	SortAuthor    SortMode = "author"
	SortRelevance SortMode = "relevance"
)

var ErrUnknownSortMode = errors.New("unknown sort mode")

var sortModes = []SortMode{SortTitle, SortPriceLow, SortPriceHigh, SortRating, SortNewest, SortAuthor, SortRelevance}

func ParseSortMode(s string) (SortMode, error) {
	m := SortMode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(sortModes, m) {
		return m, nil
	}

	return "", ErrUnknownSortMode
}

// Screen is the storefront page issuing a query; it decides the default and allowed sort modes.
type Screen uint8

const (
	ScreenBrowse Screen = iota + 1
	ScreenSearch
)

func (s Screen) SortModes() []SortMode {
	if s == ScreenSearch {
		return []SortMode{SortRelevance, SortTitle, SortAuthor, SortPriceLow, SortPriceHigh, SortRating, SortNewest}
	}

	return []SortMode{SortTitle, SortPriceLow, SortPriceHigh, SortRating, SortNewest}
}

func (s Screen) Allows(m SortMode) bool {
	return slices.Contains(s.SortModes(), m)
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

var DefaultPriceRange = PriceRange{Min: 0, Max: 100}

func (p PriceRange) Contains(price float64) bool {
	return p.Min <= price && price <= p.Max
}

type Spec struct {
	Text       string
	Categories []string
	PriceRange PriceRange
	Sort       SortMode
}

func DefaultSpec(s Screen) Spec {
	return Spec{PriceRange: DefaultPriceRange, Sort: s.SortModes()[0]}
}

// Query filters and orders books according to spec. It never fails and never modifies books;
// the result is always a fresh slice.
func Query(books []types.Book, spec Spec) []types.Book {
	terms := strings.Fields(strings.ToLower(spec.Text))

	var categories map[string]struct{}
	if len(spec.Categories) > 0 {
		categories = make(map[string]struct{}, len(spec.Categories))
		for _, c := range spec.Categories {
			categories[c] = struct{}{}
		}
	}

	ret := make([]types.Book, 0, len(books))
	for _, b := range books {
		if len(terms) > 0 && !matchesAll(corpus(&b), terms) {
			continue
		}

		if categories != nil {
			if _, ok := categories[b.Category]; !ok {
				continue
			}
		}

		if !spec.PriceRange.Contains(b.Price) {
			continue
		}

		ret = append(ret, b)
	}

	slices.SortStableFunc(ret, comparator(spec))

	return ret
}

func corpus(b *types.Book) string {
	return strings.ToLower(b.Title + " " + b.Author + " " + b.Category + " " + b.Description)
}

func matchesAll(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}

	return true
}

// newCollator returns a fresh collator per query, collate.Collator is not safe for concurrent use
func newCollator() *collate.Collator {
	return collate.New(language.English)
}
