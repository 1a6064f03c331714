package books

import (
	"context"

	"storefront/internal/types"
)

// NewStaticRepository serves the built-in storefront sample; Save is rejected.
func NewStaticRepository() Repository {
	return staticRepo{}
}

type staticRepo struct{}

func (staticRepo) GetAll(context.Context) ([]*types.Book, error) {
	sample := Sample()

	ret := make([]*types.Book, 0, len(sample))
	for ix := range sample {
		ret = append(ret, &sample[ix])
	}

	return ret, nil
}

func (staticRepo) Save(context.Context, ...*types.Book) error {
	return ErrReadOnly
}

// Sample returns a fresh copy of the six books the storefront ships with
func Sample() []types.Book {
	return []types.Book{
		{
			Id:            "1",
			Title:         "The Midnight Library",
			Author:        "Matt Haig",
			Price:         24.99,
			OriginalPrice: types.Price(29.99),
			Category:      "Fiction",
			Description:   "Between life and death there is a library, and within that library, the shelves go on forever. Every book provides a chance to try another life you could have lived.",
			Image:         "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=400&h=600&fit=crop",
			Rating:        4.8,
			Reviews:       12843,
			Featured:      true,
			Bestseller:    true,
		},
		{
			Id:          "2",
			Title:       "Educated",
			Author:      "Tara Westover",
			Price:       19.99,
			Category:    "Biography",
			Description: "A memoir about a woman who, raised by survivalists in Idaho, had never set foot in a classroom until she was 17.",
			Image:       "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=400&h=600&fit=crop",
			Rating:      4.7,
			Reviews:     8721,
			Featured:    true,
		},
		{
			Id:          "3",
			Title:       "The Seven Husbands of Evelyn Hugo",
			Author:      "Taylor Jenkins Reid",
			Price:       22.99,
			Category:    "Fiction",
			Description: "Reclusive Hollywood icon Evelyn Hugo finally decides to tell her life story, but only to one reporter.",
			Image:       "https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=400&h=600&fit=crop",
			Rating:      4.9,
			Reviews:     15632,
			Bestseller:  true,
		},
		{
			Id:          "4",
			Title:       "Klara and the Sun",
			Author:      "Kazuo Ishiguro",
			Price:       26.99,
			Category:    "Sci-Fi",
			Description: "From her place in the store, Klara, an artificial friend with outstanding observational qualities, watches carefully the behavior of those who come in to browse.",
			Image:       "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400&h=600&fit=crop",
			Rating:      4.5,
			Reviews:     6234,
			NewRelease:  true,
		},
		{
			Id:          "5",
			Title:       "The Thursday Murder Club",
			Author:      "Richard Osman",
			Price:       18.99,
			Category:    "Mystery",
			Description: "In a peaceful retirement village, four unlikely friends meet weekly to investigate cold cases. But when a local developer is found dead, the Thursday Murder Club find themselves in the middle of their first live case.",
			Image:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=600&fit=crop",
			Rating:      4.6,
			Reviews:     9876,
			Featured:    true,
		},
		{
			Id:          "6",
			Title:       "Becoming",
			Author:      "Michelle Obama",
			Price:       21.99,
			Category:    "Biography",
			Description: "In her memoir, a work of deep reflection and mesmerizing storytelling, Michelle Obama invites readers into her world.",
			Image:       "https://images.unsplash.com/photo-1506880018603-83d5b814b5a6?w=400&h=600&fit=crop",
			Rating:      4.8,
			Reviews:     18954,
			Bestseller:  true,
		},
	}
}
