package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"picklist/core/ledger"
	"picklist/core/loader"
	"picklist/core/logger"
	"picklist/core/metrics"
	"picklist/core/middleware/auth"
	"picklist/core/middleware/rayid"
	"picklist/core/reconcile"
	coresites "picklist/core/sites"
	"picklist/core/storage"

	"picklist/feature/integrity"
	"picklist/feature/picking"
	"picklist/feature/sites"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "picklist/docs/swagger"
)

// @title Picklist API
// @version 1.0
// @description Reconciles station orders into per-warehouse picking lists.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the picklist server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := loadEnv(false)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		cfg, logg, db := e.cfg, e.logger, e.db
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if db != nil {
			if err := migrate(db); err != nil {
				logg.Fatal("Failed to migrate database", zap.Error(err))
			}
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		if err := storage.EnsureBucket(context.Background(), store, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Bucket is not available", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		}

		columns, err := reconcile.LoadColumnMaps(cfg.Reconcile.ColumnMapFile)
		if err != nil {
			logg.Fatal("Failed to load column maps", zap.Error(err))
		}

		siteStore, err := coresites.New(cfg.Reconcile, db, store, cfg.Storage.Bucket, columns.Sites)
		if err != nil {
			logg.Fatal("Failed to configure site store", zap.Error(err))
		}

		var distributions reconcile.Ledger
		if db != nil && cfg.Reconcile.LedgerEnabled {
			distributions = ledger.NewStore(db)
		} else if cfg.Reconcile.LedgerEnabled {
			logg.Warn("Distribution ledger disabled: no database connection")
		}

		var importer sites.Importer
		if db != nil && cfg.Reconcile.SiteSource == reconcile.SiteSourceDatabase {
			importer = coresites.NewDBStore(db)
		}

		reg := metrics.NewRegistry()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()

		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, logg, db, integrityOptions(e)))
		mgr.Register(picking.NewFeature(store, cfg.Storage.Bucket, logg, picking.Options{
			Sites:   siteStore,
			Ledger:  distributions,
			Config:  cfg.Reconcile,
			Columns: columns,
			Metrics: reg,
		}))
		mgr.Register(sites.NewFeature(siteStore, importer, columns.Sites, logg))

		// RayID first so every log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public routes
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(reg.Handler()))

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", mgr.Enabled()))

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
