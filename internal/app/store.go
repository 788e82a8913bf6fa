package app

import (
	"fmt"

	"github.com/guttosm/tradedesk/config"
	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/schema"
	"github.com/guttosm/tradedesk/internal/storage"
)

// sqliteOpener is an indirection used by openStore; overridden in tests.
var sqliteOpener = func(path string, schemas storage.Schemas, v *schema.Validator) (storage.Store, error) {
	return storage.NewSQLiteStore(path, schemas, v)
}

// openStore returns the store selected by cfg.Store.Driver.
func openStore(cfg config.Config, catalog *models.Catalog, v *schema.Validator) (storage.Store, error) {
	schemas := storage.CatalogSchemas(catalog)

	switch cfg.Store.Driver {
	case config.DriverMemory:
		return storage.NewMemoryStore(schemas), nil
	case config.DriverPostgres:
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		return storage.NewPostgresStore(db, schemas, v), nil
	case config.DriverSQLite:
		store, err := sqliteOpener(cfg.Store.SQLitePath, schemas, v)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite: %w", err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
