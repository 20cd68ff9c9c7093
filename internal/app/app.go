package app

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/phenrril/bfguitars/internal/adapters/catalogxlsx"
	"github.com/phenrril/bfguitars/internal/adapters/faqfile"
	"github.com/phenrril/bfguitars/internal/adapters/httpserver"
	"github.com/phenrril/bfguitars/internal/adapters/notify"
	"github.com/phenrril/bfguitars/internal/adapters/ratelimit"
	"github.com/phenrril/bfguitars/internal/adapters/repo/sqlstore"
	"github.com/phenrril/bfguitars/internal/adapters/storage"
	"github.com/phenrril/bfguitars/internal/config"
	"github.com/phenrril/bfguitars/internal/domain"
	"github.com/phenrril/bfguitars/internal/usecase"
)

type App struct {
	Cfg         config.Config
	DB          *gorm.DB
	Catalog     *usecase.Catalog
	Submissions *usecase.Submissions
	Products    *sqlstore.CatalogRepo
	Limiter     ratelimit.Limiter

	redis *redis.Client
}

// Open connects with connect and builds the App on that connection. The
// connection is closed again when the App cannot be built.
func Open(cfg config.Config, connect func(config.DB) (*gorm.DB, error)) (*App, error) {
	db, err := connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	a, err := NewApp(cfg, db)
	if err != nil {
		if cerr := sqlstore.Close(db); cerr != nil {
			log.Warn().Err(cerr).Msg("closing database")
		}
		return nil, err
	}
	return a, nil
}

func NewApp(cfg config.Config, db *gorm.DB) (*App, error) {
	store := sqlstore.NewStore(db)

	var images domain.ImageResolver = storage.NewLocalImages(cfg.Images.Base)
	if cfg.Images.Remote() {
		mi, err := storage.NewMinioImages(cfg.Images)
		if err != nil {
			return nil, err
		}
		images = mi
	}

	var notifier domain.Notifier
	if cfg.SMTP.Enabled() {
		m, err := notify.NewMailer(cfg.SMTP)
		if err != nil {
			return nil, err
		}
		notifier = m
	}

	app := &App{Cfg: cfg, DB: db, Products: sqlstore.NewCatalogRepo(db)}
	app.Catalog = &usecase.Catalog{Store: store, FAQ: faqfile.New(cfg.FAQPath), Images: images}
	app.Submissions = &usecase.Submissions{Store: store, Notifier: notifier}
	app.Limiter = app.newLimiter()
	return app, nil
}

// newLimiter prefers Redis and falls back to per-process counters when it
// is not configured or not reachable at startup.
func (a *App) newLimiter() ratelimit.Limiter {
	if a.Cfg.RateLimit <= 0 {
		return nil
	}
	if a.Cfg.Redis.Addr == "" {
		return ratelimit.NewMemory(a.Cfg.RateLimit)
	}
	client := ratelimit.NewRedisClient(a.Cfg.Redis.Addr, a.Cfg.Redis.Password)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", a.Cfg.Redis.Addr).Msg("redis unavailable, using in-memory rate limit")
		_ = client.Close()
		return ratelimit.NewMemory(a.Cfg.RateLimit)
	}
	a.redis = client
	return ratelimit.NewRedis(client, a.Cfg.RateLimit)
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Options{
		APIBase:   a.Cfg.APIBase,
		StaticDir: a.Cfg.StaticDir,
		Limiter:   a.Limiter,
		Limit:     a.Cfg.RateLimit,

		TrustedProxies: a.Cfg.TrustedProxies,
	}, a.Catalog, a.Submissions)
}

// MigrateAndSeed creates the tables and fills an empty catalog with the
// default guitars.
func (a *App) MigrateAndSeed(ctx context.Context) error {
	if err := sqlstore.Migrate(a.DB); err != nil {
		return err
	}
	n, err := a.Products.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, _, err := a.Products.SaveAll(ctx, seedProducts()); err != nil {
		return err
	}
	log.Info().Int("products", len(seedProducts())).Msg("catalog seeded")
	a.logCategories(ctx)
	return nil
}

// ImportXLSX loads products from a workbook into the catalog. Rows matching
// an existing guitar by category, name and color update it in place.
func (a *App) ImportXLSX(ctx context.Context, path string) (created, updated int, err error) {
	products, err := catalogxlsx.ImportFile(path)
	if err != nil {
		return 0, 0, err
	}
	created, updated, err = a.Products.SaveAll(ctx, products)
	if err != nil {
		return 0, 0, err
	}
	a.logCategories(ctx)
	return created, updated, nil
}

// logCategories reports which listing tabs the catalog can fill.
func (a *App) logCategories(ctx context.Context) {
	cats, err := a.Products.DistinctCategories(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not list categories")
		return
	}
	log.Info().Strs("categories", cats).Msg("catalog categories")
}

func (a *App) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	return sqlstore.Close(a.DB)
}
