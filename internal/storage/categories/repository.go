package categories

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=categories

type Repository interface {
	// GetAll returns category titles in display order
	GetAll(ctx context.Context) ([]string, error)

	Save(ctx context.Context, titles ...string) error
}
