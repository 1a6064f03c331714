package catalog

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/storage/books"
	"storefront/internal/types"
)

func ids(bs []types.Book) []string {
	ret := make([]string, 0, len(bs))
	for _, b := range bs {
		ret = append(ret, b.Id)
	}
	return ret
}

func specWith(sort SortMode) Spec {
	return Spec{PriceRange: DefaultPriceRange, Sort: sort}
}

func TestQuery_Sort(t *testing.T) {
	tests := []struct {
		name string
		sort SortMode
		want []string
	}{
		{"title", SortTitle, []string{"6", "2", "4", "1", "3", "5"}},
		{"price low", SortPriceLow, []string{"5", "2", "6", "3", "1", "4"}},
		{"price high", SortPriceHigh, []string{"4", "1", "3", "6", "2", "5"}},
		{"rating keeps catalog order on ties", SortRating, []string{"3", "1", "6", "2", "5", "4"}},
		{"newest", SortNewest, []string{"6", "5", "4", "3", "2", "1"}},
		{"author", SortAuthor, []string{"4", "1", "6", "5", "2", "3"}},
		{"relevance without text is title order", SortRelevance, []string{"6", "2", "4", "1", "3", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(books.Sample(), specWith(tt.sort))
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestQuery_RatingStartsWithEvelynHugo(t *testing.T) {
	got := Query(books.Sample(), Spec{Text: "", Categories: nil, PriceRange: PriceRange{0, 100}, Sort: SortRating})
	require.NotEmpty(t, got)
	assert.Equal(t, "The Seven Husbands of Evelyn Hugo", got[0].Title)
}

func TestQuery_Text(t *testing.T) {
	t.Run("all terms must match", func(t *testing.T) {
		got := Query(books.Sample(), Spec{Text: "klara sun", PriceRange: DefaultPriceRange, Sort: SortRelevance})
		require.Len(t, got, 1)
		assert.Equal(t, "Klara and the Sun", got[0].Title)
	})

	t.Run("case insensitive and across fields", func(t *testing.T) {
		got := Query(books.Sample(), Spec{Text: "  BIOGRAPHY   memoir ", PriceRange: DefaultPriceRange, Sort: SortTitle})
		assert.Equal(t, []string{"6", "2"}, ids(got))
	})

	t.Run("whitespace only is no filter", func(t *testing.T) {
		got := Query(books.Sample(), Spec{Text: " \t ", PriceRange: DefaultPriceRange, Sort: SortTitle})
		assert.Len(t, got, 6)
	})

	t.Run("no match", func(t *testing.T) {
		got := Query(books.Sample(), Spec{Text: "klara murder", PriceRange: DefaultPriceRange})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestQuery_Filters(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want []string
	}{
		{
			name: "category",
			spec: Spec{Categories: []string{"Biography"}, PriceRange: DefaultPriceRange, Sort: SortTitle},
			want: []string{"6", "2"},
		},
		{
			name: "several categories",
			spec: Spec{Categories: []string{"Mystery", "Sci-Fi"}, PriceRange: DefaultPriceRange, Sort: SortTitle},
			want: []string{"4", "5"},
		},
		{
			name: "unknown category",
			spec: Spec{Categories: []string{"Poetry"}, PriceRange: DefaultPriceRange, Sort: SortTitle},
			want: []string{},
		},
		{
			name: "price range",
			spec: Spec{PriceRange: PriceRange{Min: 20, Max: 25}, Sort: SortTitle},
			want: []string{"6", "1", "3"},
		},
		{
			name: "price bounds are inclusive",
			spec: Spec{PriceRange: PriceRange{Min: 18.99, Max: 18.99}, Sort: SortTitle},
			want: []string{"5"},
		},
		{
			name: "inverted price range is empty",
			spec: Spec{PriceRange: PriceRange{Min: 50, Max: 10}, Sort: SortTitle},
			want: []string{},
		},
		{
			name: "all filters combined",
			spec: Spec{Text: "the", Categories: []string{"Fiction"}, PriceRange: PriceRange{Min: 0, Max: 23}, Sort: SortPriceLow},
			want: []string{"3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Query(books.Sample(), tt.spec)))
		})
	}
}

func TestQuery_Relevance(t *testing.T) {
	catalog := []types.Book{
		{Id: "a", Title: "Zebra Stories", Author: "Ann Lee", Description: "garden"},
		{Id: "b", Title: "Apple Garden", Author: "Bob"},
		{Id: "c", Title: "Middle", Author: "Garden Smith"},
		{Id: "d", Title: "Aardvark", Author: "Carl", Description: "a garden tale"},
	}

	got := Query(catalog, Spec{Text: "Garden", PriceRange: DefaultPriceRange, Sort: SortRelevance})
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids(got))
}

func TestQuery_RelevanceTiesUseTitleOrder(t *testing.T) {
	catalog := []types.Book{
		{Id: "a", Title: "Zen Garden", Author: "Ann"},
		{Id: "b", Title: "garden of Words", Author: "Bob"},
		{Id: "c", Title: "Rooftop", Author: "Carla Garden"},
		{Id: "d", Title: "Apple Garden", Author: "Dan"},
		{Id: "e", Title: "Birch", Author: "Eve Garden"},
	}

	got := Query(catalog, Spec{Text: "garden", PriceRange: DefaultPriceRange, Sort: SortRelevance})
	assert.Equal(t, []string{"d", "b", "a", "e", "c"}, ids(got))
}

func TestQuery_Collation(t *testing.T) {
	catalog := []types.Book{
		{Id: "1", Title: "Zoo Stories", Author: "émile Zola"},
		{Id: "2", Title: "apple Season", Author: "Zadie Smith"},
		{Id: "3", Title: "Éclair", Author: "ann Patchett"},
		{Id: "4", Title: "Banana", Author: "Bram Stoker"},
	}

	got := Query(catalog, specWith(SortTitle))
	assert.Equal(t, []string{"2", "4", "3", "1"}, ids(got))

	got = Query(catalog, specWith(SortAuthor))
	assert.Equal(t, []string{"3", "4", "1", "2"}, ids(got))
}

func TestQuery_EmptyCatalog(t *testing.T) {
	got := Query(nil, specWith(SortTitle))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuery_DoesNotModifyInput(t *testing.T) {
	in := books.Sample()
	_ = Query(in, specWith(SortPriceHigh))
	assert.Equal(t, books.Sample(), in)
}

func TestQuery_Properties(t *testing.T) {
	texts := []string{"", "the", "life story", "a", "zzz"}
	categorySets := [][]string{nil, {"Fiction"}, {"Biography", "Mystery"}}
	ranges := []PriceRange{DefaultPriceRange, {Min: 19.99, Max: 22.99}, {Min: 30, Max: 5}}

	for _, text := range texts {
		for _, cs := range categorySets {
			for _, pr := range ranges {
				for _, mode := range sortModes {
					spec := Spec{Text: text, Categories: cs, PriceRange: pr, Sort: mode}
					got := Query(books.Sample(), spec)

					for _, b := range got {
						if len(cs) > 0 {
							assert.Contains(t, cs, b.Category)
						}
						assert.True(t, pr.Contains(b.Price), "price %v outside %v", b.Price, pr)
						for _, term := range strings.Fields(strings.ToLower(text)) {
							assert.Contains(t, corpus(&b), term)
						}
					}
				}
			}
		}
	}
}

func TestQuery_TitleSortIsIdempotent(t *testing.T) {
	once := Query(books.Sample(), specWith(SortTitle))
	twice := Query(once, specWith(SortTitle))
	assert.Equal(t, ids(once), ids(twice))
}

func TestQuery_PriceLowReversedIsPriceHigh(t *testing.T) {
	low := ids(Query(books.Sample(), specWith(SortPriceLow)))
	high := ids(Query(books.Sample(), specWith(SortPriceHigh)))

	slices.Reverse(low)
	assert.Equal(t, high, low)
}

func TestParseSortMode(t *testing.T) {
	m, err := ParseSortMode(" Price-High ")
	require.NoError(t, err)
	assert.Equal(t, SortPriceHigh, m)

	_, err = ParseSortMode("popularity")
	assert.ErrorIs(t, err, ErrUnknownSortMode)
}

func TestScreen(t *testing.T) {
	assert.Equal(t, SortTitle, DefaultSpec(ScreenBrowse).Sort)
	assert.Equal(t, SortRelevance, DefaultSpec(ScreenSearch).Sort)
	assert.Equal(t, DefaultPriceRange, DefaultSpec(ScreenSearch).PriceRange)

	assert.True(t, ScreenBrowse.Allows(SortNewest))
	assert.False(t, ScreenBrowse.Allows(SortRelevance))
	assert.False(t, ScreenBrowse.Allows(SortAuthor))
	assert.True(t, ScreenSearch.Allows(SortAuthor))
	assert.True(t, ScreenSearch.Allows(SortNewest))
}
