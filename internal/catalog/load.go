package catalog

import (
	"context"
	"fmt"

	"storefront/internal/storage/books"
	"storefront/internal/storage/categories"
	"storefront/internal/types"
)

// Load reads the whole catalog source once and freezes it
func Load(ctx context.Context, br books.Repository, cr categories.Repository) (*Catalog, error) {
	rows, err := br.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading books: %w", err)
	}

	names, err := cr.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	bs := make([]types.Book, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			bs = append(bs, *row)
		}
	}

	c, err := New(bs, names)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	return c, nil
}
