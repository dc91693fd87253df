package cmd

import (
	"fmt"
	"time"

	"op-tracker/core/catalog"
	"op-tracker/core/config"
	"op-tracker/core/database"
	"op-tracker/core/ledger"
	"op-tracker/core/logger"

	"go.uber.org/zap"
)

// setup loads configuration and builds the application logger. Every
// subcommand starts here.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)
	return cfg, logg, nil
}

// openLedger builds the configured ledger backend. The returned closer is
// always non-nil and safe to call once.
func openLedger(cfg *config.Config, logg *zap.Logger) (ledger.Ledger, func(), error) {
	switch cfg.Ledger.Driver {
	case ledger.DriverFile:
		fl, err := ledger.NewFileLog(cfg.Ledger.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open ledger file: %w", err)
		}
		logg.Info("Using file ledger", zap.String("path", cfg.Ledger.Path))
		return fl, func() { _ = fl.Close() }, nil

	case ledger.DriverGorm:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to ledger database: %w", err)
		}
		if found, err := database.DetectLegacyLedgerTable(db); err == nil && found {
			logg.Warn("Legacy running-total table detected, run 'importlegacy' to migrate it")
		}
		store, err := ledger.NewGormStore(db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to prepare ledger store: %w", err)
		}
		logg.Info("Using database ledger", zap.String("driver", cfg.Database.Driver))
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown ledger driver %q", cfg.Ledger.Driver)
	}
}

// openCatalog connects to the ERP database and wraps the order loader in the
// snapshot cache.
func openCatalog(cfg *config.Config) (*catalog.Cache, error) {
	db, err := database.Connect(cfg.Erp)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ERP database: %w", err)
	}
	ttl := time.Duration(cfg.Catalog.CacheTTLSeconds) * time.Second
	return catalog.NewCache(catalog.NewLoader(db), ttl), nil
}
