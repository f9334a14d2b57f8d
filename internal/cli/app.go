package cli

import (
	"catalog-engine/internal/cache"
	catalog "catalog-engine/internal/catalogService"
	"catalog-engine/internal/config"
	"catalog-engine/internal/extract"
	"catalog-engine/internal/repository"
	"catalog-engine/utils"
	"context"
	"errors"
	"fmt"
)

// App is the wired service graph shared by the commands
type App struct {
	Config    config.Config
	Service   *catalog.CatalogService
	Extractor extract.Extractor
	Persisted *repository.PersistedBackend

	closers []func() error
}

// Bootstrap selects the backend once from cfg and wires the service. The
// static dataset serves every request when no database is configured and
// serves reads while a configured database fails.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, error) {
	ds, err := repository.DefaultDataset()
	if err != nil {
		return nil, fmt.Errorf("load fallback dataset: %w", err)
	}
	static := repository.NewStaticBackend(ds)

	app := &App{Config: cfg}

	var backend repository.CatalogBackend = static
	if cfg.DatabaseConfigured() {
		persisted, err := openPersisted(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.Persisted = persisted
		app.closers = append(app.closers, persisted.Close)
		backend = persisted
	}

	facetCache := facetCacheFor(ctx, cfg, app)
	app.Service = catalog.NewCatalogService(backend, static, facetCache, ds.DefaultFacets)
	app.Extractor = extractorFor(ctx, cfg, app)

	_, disabled := app.Extractor.(extract.Disabled)
	utils.Info("catalog backend selected", map[string]any{
		"mode":          string(backend.Mode()),
		"driver":        cfg.DatabaseDriver,
		"image_search":  !disabled,
		"redis_enabled": cfg.RedisURL != "",
	})
	return app, nil
}

// Close releases every resource opened by Bootstrap
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openPersisted(ctx context.Context, cfg config.Config) (*repository.PersistedBackend, error) {
	persisted, err := repository.Open(ctx, repository.Options{
		Driver:       cfg.DatabaseDriver,
		DSN:          cfg.DatabaseURL,
		QueryTimeout: cfg.QueryTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	return persisted, nil
}

// facetCacheFor prefers Redis and falls back to the in-process cache
func facetCacheFor(ctx context.Context, cfg config.Config, app *App) cache.FacetCache {
	if cfg.RedisURL == "" {
		return cache.NewMemoryCache(cfg.FacetCacheTTL)
	}

	client, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		utils.Warn("redis unavailable, using in-process facet cache", map[string]any{"error": err.Error()})
		return cache.NewMemoryCache(cfg.FacetCacheTTL)
	}
	app.closers = append(app.closers, client.Close)
	return cache.NewRedisCache(client, cfg.FacetCacheTTL)
}

func extractorFor(ctx context.Context, cfg config.Config, app *App) extract.Extractor {
	if cfg.GeminiAPIKey == "" {
		return extract.Disabled{}
	}

	gemini, err := extract.NewGeminiExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		utils.Warn("image search disabled", map[string]any{"error": err.Error()})
		return extract.Disabled{}
	}
	app.closers = append(app.closers, gemini.Close)
	return gemini
}
