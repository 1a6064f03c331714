package catalog

import (
	"cmp"
	"strings"

	"storefront/internal/types"
)

type compareFunc func(a, b *types.Book) int

// cascade tries each key in order and returns the first non-zero result
func cascade(keys ...compareFunc) compareFunc {
	return func(a, b *types.Book) int {
		for _, k := range keys {
			if c := k(a, b); c != 0 {
				return c
			}
		}

		return 0
	}
}

func descending(f compareFunc) compareFunc {
	return func(a, b *types.Book) int {
		return f(b, a)
	}
}

// preferring puts books satisfying pred before those that don't
func preferring(pred func(b *types.Book) bool) compareFunc {
	return func(a, b *types.Book) int {
		pa, pb := pred(a), pred(b)
		switch {
		case pa && !pb:
			return -1
		case !pa && pb:
			return 1
		}

		return 0
	}
}

func byPrice(a, b *types.Book) int {
	return cmp.Compare(a.Price, b.Price)
}

func byRating(a, b *types.Book) int {
	return cmp.Compare(a.Rating, b.Rating)
}

func byId(a, b *types.Book) int {
	return strings.Compare(a.Id, b.Id)
}

func comparator(spec Spec) func(a, b types.Book) int {
	col := newCollator()

	byTitle := func(a, b *types.Book) int {
		return col.CompareString(a.Title, b.Title)
	}

	var f compareFunc
	switch spec.Sort {
	case SortPriceLow:
		f = byPrice
	case SortPriceHigh:
		f = descending(byPrice)
	case SortRating:
		f = descending(byRating)
	case SortNewest:
		f = descending(byId)
	case SortAuthor:
		f = func(a, b *types.Book) int {
			return col.CompareString(a.Author, b.Author)
		}
	case SortRelevance:
		f = relevance(strings.ToLower(strings.TrimSpace(spec.Text)), byTitle)
	default:
		f = byTitle
	}

	return func(a, b types.Book) int {
		return f(&a, &b)
	}
}

// relevance ranks title matches of the whole query above author matches, then falls back to fallback
func relevance(query string, fallback compareFunc) compareFunc {
	if query == "" {
		return fallback
	}

	return cascade(
		preferring(func(b *types.Book) bool {
			return strings.Contains(strings.ToLower(b.Title), query)
		}),
		preferring(func(b *types.Book) bool {
			return strings.Contains(strings.ToLower(b.Author), query)
		}),
		fallback,
	)
}
