package categories

import (
	"context"
	"log/slog"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPGXRepository(pg *pgxpool.Pool, l *slog.Logger) Repository {
	return &pgxRepo{pg: pg, g: goqu.Dialect("postgres"), l: l}
}

type pgxRepo struct {
	pg *pgxpool.Pool
	g  goqu.DialectWrapper
	l  *slog.Logger
}

type pgxCategory struct {
	Title    string `db:"title"`
	Position int    `db:"position"`
}

func (p *pgxRepo) GetAll(ctx context.Context) ([]string, error) {
	sql, params, err := p.g.From("category").
		Select(goqu.C("title")).
		Order(goqu.C("position").Asc(), goqu.C("title").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []string

	err = pgxscan.Select(ctx, p.pg, &rows, sql, params...)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (p *pgxRepo) Save(ctx context.Context, titles ...string) error {
	rows := make([]any, 0, len(titles))
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			p.l.WarnContext(ctx, "Skipping empty category title")
			continue
		}

		rows = append(rows, pgxCategory{Title: title, Position: len(rows) + 1})
	}

	if len(rows) == 0 {
		return nil
	}

	sql, params, err := p.g.Insert("category").
		Rows(rows...).
		OnConflict(goqu.DoUpdate("title", map[string]any{
			"position": goqu.L("excluded.position"),
		})).
		ToSQL()
	if err != nil {
		return err
	}

	_, err = p.pg.Exec(ctx, sql, params...)
	return err
}
