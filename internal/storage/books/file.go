package books

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"storefront/internal/types"
)

var ErrReadOnly = errors.New("catalog source is read-only")

// Document is the layout of a YAML catalog file:
//
//	categories: [Fiction, Mystery]
//	books:
//	  - id: "1"
//	    title: ...
type Document struct {
	Categories []string     `yaml:"categories"`
	Books      []types.Book `yaml:"books"`
}

func ReadDocument(path string) (*Document, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var doc Document
	if err = yaml.Unmarshal(bs, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}

	return &doc, nil
}

func NewFileRepository(path string) Repository {
	return &fileRepo{path: path}
}

type fileRepo struct {
	path string
}

func (f *fileRepo) GetAll(context.Context) ([]*types.Book, error) {
	doc, err := ReadDocument(f.path)
	if err != nil {
		return nil, err
	}

	ret := make([]*types.Book, 0, len(doc.Books))
	for ix := range doc.Books {
		ret = append(ret, &doc.Books[ix])
	}

	return ret, nil
}

func (f *fileRepo) Save(context.Context, ...*types.Book) error {
	return ErrReadOnly
}
