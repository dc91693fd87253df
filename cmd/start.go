package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"op-tracker/core/loader"
	"op-tracker/core/logger"
	"op-tracker/core/middleware/auth"
	"op-tracker/core/middleware/rayid"
	"op-tracker/core/reconcile"
	"op-tracker/core/storage"

	"op-tracker/feature/export"
	"op-tracker/feature/orders"
	"op-tracker/feature/scanning"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "op-tracker/docs/swagger"
)

// @title OP Tracker API
// @version 1.0
// @description API for reconciling factory-floor barcode scans against production orders.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the conference server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logg, err := setup()
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer logg.Sync()

		snapshots, err := openCatalog(cfg)
		if err != nil {
			logg.Fatal("Failed to open order catalog", zap.Error(err))
		}

		led, closeLedger, err := openLedger(cfg, logg)
		if err != nil {
			logg.Fatal("Failed to open scan ledger", zap.Error(err))
		}
		defer closeLedger()

		engine := reconcile.NewEngine(led, cfg.Reconcile.Policy())

		// Object storage is optional; without it the export feature stays off.
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional object storage unavailable", zap.Error(err))
		} else {
			store = client
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		mgr := loader.NewManager()
		mgr.Register(orders.NewFeature(snapshots, engine, logg))
		mgr.Register(scanning.NewFeature(snapshots, engine, logg))
		mgr.Register(export.NewFeature(led, store, cfg.Storage.Bucket, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
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
