package main

import (
	"context"
	"log/slog"
	"os"
	"path"
	"runtime"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/storage"
	"storefront/internal/storage/books"
	"storefront/internal/storage/categories"
	"storefront/internal/types"
)

// seed copies the built-in catalog, or the YAML file in CATALOG_FILE, into the DATABASE_URL database
func main() {
	_, thisFile, _, _ := runtime.Caller(0)

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("Invalid configuration: " + err.Error())
		os.Exit(1)
	}

	if err = logger.SetupSLog(cfg.LogLevel, cfg.LogFormat, path.Dir(path.Dir(path.Dir(thisFile))), struct{}{}); err != nil {
		slog.Error("Failed to set up logging: " + err.Error())
		os.Exit(1)
	}

	if cfg.DatabaseUrl == "" {
		slog.Error("You need to specify DATABASE_URL env var")
		os.Exit(1)
	}

	ctx := context.Background()

	var (
		srcBooks      books.Repository      = books.NewStaticRepository()
		srcCategories categories.Repository = categories.NewStaticRepository()
	)
	if cfg.CatalogFile != "" {
		srcBooks = books.NewFileRepository(cfg.CatalogFile)
		srcCategories = categories.NewFileRepository(cfg.CatalogFile)
	}

	// loading through the catalog rejects broken records before anything is written
	cat, err := catalog.Load(ctx, srcBooks, srcCategories)
	if err != nil {
		slog.Error("Failed to read catalog: " + err.Error())
		os.Exit(1)
	}

	pcfg, err := pgxpool.ParseConfig(cfg.DatabaseUrl)
	if err != nil {
		slog.Error("Failed to parse DATABASE_URL: " + err.Error())
		os.Exit(1)
	}

	pcfg.ConnConfig.Tracer = logger.NewPGXTracer(slog.Default())

	pg, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		slog.Error("failed to create postgres pool: " + err.Error())
		os.Exit(1)
	}
	defer pg.Close()

	if err = storage.Migrate(ctx, pg); err != nil {
		slog.Error("Failed to create schema: " + err.Error())
		os.Exit(1)
	}

	if err = categories.NewPGXRepository(pg, slog.Default()).Save(ctx, cat.Categories()...); err != nil {
		slog.Error("Failed to save categories: " + err.Error())
		os.Exit(1)
	}

	all := cat.All()
	rows := make([]*types.Book, 0, len(all))
	for ix := range all {
		rows = append(rows, &all[ix])
	}

	if err = books.NewPGXRepository(pg, slog.Default()).Save(ctx, rows...); err != nil {
		slog.Error("Failed to save books: " + err.Error())
		os.Exit(1)
	}

	slog.Info("Catalog seeded", "books", len(rows), "categories", len(cat.Categories()))
}
