package types

import (
	"errors"
	"fmt"
	"math"
)

type Book struct {
	Id            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Author        string   `json:"author" yaml:"author"`
	Category      string   `json:"category" yaml:"category"`
	Description   string   `json:"description" yaml:"description"`
	Image         string   `json:"image" yaml:"image"`
	Price         float64  `json:"price" yaml:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
	Rating        float64  `json:"rating" yaml:"rating"`
	Reviews       int      `json:"reviews" yaml:"reviews"`
	Featured      bool     `json:"featured" yaml:"featured"`
	Bestseller    bool     `json:"bestseller" yaml:"bestseller"`
	NewRelease    bool     `json:"newRelease" yaml:"newRelease"`
}

func (b *Book) Discounted() bool {
	return b.OriginalPrice != nil && *b.OriginalPrice > b.Price
}

// DiscountPercent is the whole-number percentage off the original price, 0 if not discounted
func (b *Book) DiscountPercent() int {
	if !b.Discounted() {
		return 0
	}

	return int(math.Round((*b.OriginalPrice - b.Price) / *b.OriginalPrice * 100))
}

// Validate reports the first problem found in the record
func (b *Book) Validate() error {
	switch {
	case b.Id == "":
		return errors.New("book id is empty")
	case b.Title == "":
		return fmt.Errorf("book %s: title is empty", b.Id)
	case !finite(b.Price):
		return fmt.Errorf("book %s: price %v is not a finite number", b.Id, b.Price)
	case b.OriginalPrice != nil && !finite(*b.OriginalPrice):
		return fmt.Errorf("book %s: original price %v is not a finite number", b.Id, *b.OriginalPrice)
	case !finite(b.Rating):
		return fmt.Errorf("book %s: rating %v is not a finite number", b.Id, b.Rating)
	case b.Price < 0:
		return fmt.Errorf("book %s: negative price %v", b.Id, b.Price)
	case b.OriginalPrice != nil && *b.OriginalPrice <= b.Price:
		return fmt.Errorf("book %s: original price %v must exceed price %v", b.Id, *b.OriginalPrice, b.Price)
	case b.Rating < 0 || b.Rating > 5:
		return fmt.Errorf("book %s: rating %v out of [0,5]", b.Id, b.Rating)
	case b.Reviews < 0:
		return fmt.Errorf("book %s: negative reviews count %d", b.Id, b.Reviews)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Price returns a pointer suitable for Book.OriginalPrice
func Price(v float64) *float64 {
	return &v
}
