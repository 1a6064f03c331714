package books

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/doug-martin/goqu/v9"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/types"
)

func NewPGXRepository(pg *pgxpool.Pool, l *slog.Logger) Repository {
	return &pgxRepo{pg: pg, g: goqu.Dialect("postgres"), l: l}
}

type pgxRepo struct {
	pg *pgxpool.Pool
	g  goqu.DialectWrapper
	l  *slog.Logger
}

type pgxBook struct {
	Id            string   `db:"id"`
	Position      int      `db:"position"`
	Title         string   `db:"title"`
	Author        string   `db:"author"`
	Category      string   `db:"category"`
	Description   string   `db:"description"`
	ImageUrl      string   `db:"image_url"`
	Price         float64  `db:"price"`
	OriginalPrice *float64 `db:"original_price"`
	Rating        float64  `db:"rating"`
	Reviews       int      `db:"reviews"`
	Featured      bool     `db:"featured"`
	Bestseller    bool     `db:"bestseller"`
	NewRelease    bool     `db:"new_release"`
}

func (b *pgxBook) intoCommon(ctx context.Context, l *slog.Logger) *types.Book {
	image := ""
	if b.ImageUrl != "" {
		u, err := url.Parse(b.ImageUrl)
		if err != nil {
			l.ErrorContext(ctx, "Failed to parse image URL stored in DB ("+b.ImageUrl+"): "+err.Error())
		} else {
			image = u.String()
		}
	}

	return &types.Book{
		Id:            b.Id,
		Title:         b.Title,
		Author:        b.Author,
		Category:      b.Category,
		Description:   b.Description,
		Image:         image,
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		Rating:        b.Rating,
		Reviews:       b.Reviews,
		Featured:      b.Featured,
		Bestseller:    b.Bestseller,
		NewRelease:    b.NewRelease,
	}
}

func (p *pgxRepo) GetAll(ctx context.Context) ([]*types.Book, error) {
	sql, params, err := p.g.From("book").
		Order(goqu.C("position").Asc(), goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []pgxBook

	err = pgxscan.Select(ctx, p.pg, &rows, sql, params...)
	if err != nil {
		return nil, err
	}

	ret := make([]*types.Book, 0, len(rows))
	for ix := range rows {
		ret = append(ret, rows[ix].intoCommon(ctx, p.l))
	}

	return ret, nil
}

// Save upserts books; their order in the call becomes catalog order
func (p *pgxRepo) Save(ctx context.Context, books ...*types.Book) error {
	if len(books) == 0 {
		return nil
	}

	rows := make([]any, 0, len(books))
	for ix, book := range books {
		rows = append(rows, pgxBook{
			Id:            book.Id,
			Position:      ix + 1,
			Title:         book.Title,
			Author:        book.Author,
			Category:      book.Category,
			Description:   book.Description,
			ImageUrl:      book.Image,
			Price:         book.Price,
			OriginalPrice: book.OriginalPrice,
			Rating:        book.Rating,
			Reviews:       book.Reviews,
			Featured:      book.Featured,
			Bestseller:    book.Bestseller,
			NewRelease:    book.NewRelease,
		})
	}

	sql, params, err := p.g.Insert("book").
		Rows(rows...).
		OnConflict(goqu.DoUpdate("id", map[string]any{
			"position":       goqu.L("excluded.position"),
			"title":          goqu.L("excluded.title"),
			"author":         goqu.L("excluded.author"),
			"category":       goqu.L("excluded.category"),
			"description":    goqu.L("excluded.description"),
			"image_url":      goqu.L("excluded.image_url"),
			"price":          goqu.L("excluded.price"),
			"original_price": goqu.L("excluded.original_price"),
			"rating":         goqu.L("excluded.rating"),
			"reviews":        goqu.L("excluded.reviews"),
			"featured":       goqu.L("excluded.featured"),
			"bestseller":     goqu.L("excluded.bestseller"),
			"new_release":    goqu.L("excluded.new_release"),
		})).
		ToSQL()
	if err != nil {
		return err
	}

	_, err = p.pg.Exec(ctx, sql, params...)
	return err
}
