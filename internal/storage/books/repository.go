package books

import (
	"context"

	"storefront/internal/types"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=books

type Repository interface {
	// GetAll returns every stored book in catalog order
	GetAll(ctx context.Context) ([]*types.Book, error)

	Save(ctx context.Context, books ...*types.Book) error
}
