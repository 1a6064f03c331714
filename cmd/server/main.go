package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path"
	"runtime"
	"syscall"
	"time"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"

	"storefront/internal/carousel"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/forms"
	"storefront/internal/logger"
	"storefront/internal/opds"
	"storefront/internal/ratelimit"
	"storefront/internal/response"
	"storefront/internal/server"
	"storefront/internal/storage/books"
	"storefront/internal/storage/categories"
)

const (
	featuredShown = 4
	sweepInterval = time.Minute
)

func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.SourceFile:
		return catalog.Load(ctx, books.NewFileRepository(cfg.CatalogFile), categories.NewFileRepository(cfg.CatalogFile))
	case config.SourcePostgres:
		pcfg, err := pgxpool.ParseConfig(cfg.DatabaseUrl)
		if err != nil {
			return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
		}

		pcfg.ConnConfig.Tracer = logger.NewPGXTracer(slog.Default())

		pg, err := pgxpool.NewWithConfig(ctx, pcfg)
		if err != nil {
			return nil, fmt.Errorf("creating postgres pool: %w", err)
		}
		// the catalog is read once, the pool is not needed afterwards
		defer pg.Close()

		return catalog.Load(ctx, books.NewPGXRepository(pg, slog.Default()), categories.NewPGXRepository(pg, slog.Default()))
	default:
		return catalog.Load(ctx, books.NewStaticRepository(), categories.NewStaticRepository())
	}
}

func main() {
	_, thisFile, _, _ := runtime.Caller(0)

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("Invalid configuration: " + err.Error())
		os.Exit(1)
	}

	if err = logger.SetupSLog(cfg.LogLevel, cfg.LogFormat, path.Dir(path.Dir(path.Dir(thisFile))), middleware.RequestIDKey); err != nil {
		slog.Error("Failed to set up logging: " + err.Error())
		os.Exit(1)
	}

	siteUrl, err := url.Parse(cfg.SiteUrl)
	if err != nil {
		slog.Error("Failed to parse SITE_URL: " + err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := openCatalog(ctx, cfg)
	if err != nil {
		slog.Error("Failed to load catalog: " + err.Error())
		os.Exit(1)
	}
	slog.Info("Catalog loaded", "source", cfg.CatalogSource, "books", cat.Len())

	carts := cart.NewStore(cfg.CartTTL)
	carts.Start()
	defer carts.Stop()

	ticker := &carousel.Ticker{Interval: cfg.CarouselInterval}
	go ticker.Run(ctx, len(cat.Featured()), featuredShown)

	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		t := time.NewTicker(sweepInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				limiter.Sweep()
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CorsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Mount("/api", server.Handler(server.Deps{
		Catalog:   cat,
		Carts:     carts,
		Pricing:   cfg.Pricing,
		CartDemo:  cfg.CartDemo,
		Carousel:  ticker,
		Feeds:     &opds.Builder{BaseUrl: siteUrl, FeedPath: "/api/opds"},
		Limiter:   limiter,
		Validator: forms.New(),
		Responder: &response.Responder{DebugMode: cfg.DebugMode},
		Logger:    slog.Default(),
	}))

	srv := &http.Server{Addr: cfg.BindAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening on " + cfg.BindAddr)
	if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("aborting: " + err.Error())
		os.Exit(1)
	}
}
