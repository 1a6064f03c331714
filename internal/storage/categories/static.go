package categories

import (
	"context"

	"storefront/internal/storage/books"
)

var sample = []string{
	"Fiction",
	"Non-Fiction",
	"Mystery",
	"Romance",
	"Sci-Fi",
	"Fantasy",
	"Biography",
	"History",
	"Self-Help",
	"Poetry",
}

func NewStaticRepository() Repository {
	return staticRepo{}
}

type staticRepo struct{}

func (staticRepo) GetAll(context.Context) ([]string, error) {
	return append([]string(nil), sample...), nil
}

func (staticRepo) Save(context.Context, ...string) error {
	return books.ErrReadOnly
}

func NewFileRepository(path string) Repository {
	return &fileRepo{path: path}
}

type fileRepo struct {
	path string
}

func (f *fileRepo) GetAll(context.Context) ([]string, error) {
	doc, err := books.ReadDocument(f.path)
	if err != nil {
		return nil, err
	}

	return doc.Categories, nil
}

func (f *fileRepo) Save(context.Context, ...string) error {
	return books.ErrReadOnly
}
