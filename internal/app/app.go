package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradedesk/config"
	"github.com/guttosm/tradedesk/internal/api"
	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/ingestion"
	"github.com/guttosm/tradedesk/internal/logger"
	"github.com/guttosm/tradedesk/internal/schema"
	"github.com/guttosm/tradedesk/internal/service"
	"github.com/guttosm/tradedesk/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the schema catalog and the input validator.
//   - Opens the record store selected by STORE_DRIVER.
//   - Seeds the memory store from the configured fixtures.
//   - Wires services, handlers and the Gin router.
//   - Registers health and readiness probes backed by the store.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	catalog, validator, err := newSchemas(cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := openStore(cfg, catalog, validator)
	if err != nil {
		return nil, nil, err
	}

	// The memory store starts empty on every boot
	if cfg.Store.Driver == config.DriverMemory {
		if _, err := seedFromFixtures(context.Background(), cfg, store, catalog, validator, false); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
	}

	handler := api.NewHandler(
		service.NewUserService(store),
		service.NewTradeService(store, catalog, validator),
		catalog,
		validator,
	)

	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	api.NewHealthHandler(store.Ping).Register(router)

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.L().Warn().Err(err).Msg("store close failed")
		}
	}

	return router, cleanup, nil
}

// SeedStore loads the configured fixtures into the configured store.
// With strict set, a single invalid fixture aborts the seed before any write.
func SeedStore(ctx context.Context, strict bool) (ingestion.Report, error) {
	cfg := config.AppConfig

	catalog, validator, err := newSchemas(cfg)
	if err != nil {
		return nil, err
	}
	store, err := openStore(cfg, catalog, validator)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	return seedFromFixtures(ctx, cfg, store, catalog, validator, strict)
}

func newSchemas(cfg config.Config) (*models.Catalog, *schema.Validator, error) {
	catalog, err := models.NewCatalog()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build schema catalog: %w", err)
	}
	validator := schema.NewValidator(catalog.Enums, schema.WithCoercion(cfg.Schema.Coercion))
	return catalog, validator, nil
}

func seedFromFixtures(ctx context.Context, cfg config.Config, store storage.Store, catalog *models.Catalog, v *schema.Validator, strict bool) (ingestion.Report, error) {
	fx, err := ingestion.LoadFixtures(cfg.Store.FixturesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}
	report, err := ingestion.Seed(ctx, store, catalog, v, fx, ingestion.Options{Strict: strict})
	if err != nil {
		return report, fmt.Errorf("failed to seed %s store: %w", cfg.Store.Driver, err)
	}
	return report, nil
}
