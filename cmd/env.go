package cmd

import (
	"fmt"

	"picklist/core/config"
	"picklist/core/database"
	"picklist/core/ledger"
	"picklist/core/logger"
	"picklist/core/reconcile"
	"picklist/core/sites"
	"picklist/feature/integrity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env is the configuration, logger and optional database shared by commands.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

// loadEnv loads the configuration and logger. When needDB is set a failed
// connection is an error; otherwise it is logged and db stays nil.
func loadEnv(needDB bool) (*env, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	e := &env{cfg: cfg, logger: l}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		if needDB {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		l.Warn("Optional database connection failed", zap.Error(err))
		return e, nil
	}
	e.db = db
	return e, nil
}

// migrate creates or updates the site and ledger tables.
func migrate(db *gorm.DB) error {
	if err := sites.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate sites: %w", err)
	}
	if err := ledger.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate ledger: %w", err)
	}
	return nil
}

// integrityOptions lists what the integrity checks expect for this config.
func integrityOptions(e *env) integrity.Options {
	opts := integrity.Options{
		Region:    e.cfg.Storage.Region,
		RunPrefix: e.cfg.Reconcile.ReportPrefix,
		Models:    []any{&sites.Site{}, &ledger.Record{}},
	}
	if e.cfg.Reconcile.SiteSource == reconcile.SiteSourceStorage {
		opts.SiteObject = e.cfg.Reconcile.SiteObject
	}
	return opts
}
