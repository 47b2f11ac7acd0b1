// Package app builds the Fiber application: global middleware, service
// construction and route registration.
package app

import (
	"assettrack-backend/internal/assets"
	"assettrack-backend/internal/cache"
	"assettrack-backend/internal/config"
	"assettrack-backend/internal/health"
	"assettrack-backend/internal/history"
	"assettrack-backend/internal/inventory"
	"assettrack-backend/internal/lifecycle"
	"assettrack-backend/internal/middleware"
	"assettrack-backend/internal/reports"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires services and routes over an established DB connection. A nil
// Redis client disables caching but not the API.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(""))
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())

	reportCache := cache.New(rdb, cfg.CacheTTL)

	lifecycleService := &lifecycle.Service{
		DB:        db,
		Cache:     reportCache,
		TxTimeout: cfg.TxTimeout,
	}
	assetService := &assets.Service{DB: db, Cache: reportCache}
	reportService := &reports.Service{DB: db, Cache: reportCache}
	historyService := &history.Service{DB: db}
	inventoryService := &inventory.Service{DB: db}

	healthHandlers := &health.Handlers{DB: db, Rdb: rdb}
	app.Get("/health", healthHandlers.Live)
	app.Get("/health/json", healthHandlers.JSON)

	api := app.Group("/api/v1")

	assetHandlers := &assets.Handlers{Service: assetService}
	assetGroup := api.Group("/assets")
	assetGroup.Get("/", assetHandlers.List)
	assetGroup.Post("/", assetHandlers.Create)
	assetGroup.Get("/statuses", assetHandlers.Statuses)
	assetGroup.Get("/summary", assetHandlers.Summary)
	assetGroup.Get("/generate-tag", assetHandlers.GenerateTag)
	assetGroup.Get("/trash", assetHandlers.ListTrash)
	assetGroup.Delete("/trash", assetHandlers.EmptyTrash)
	assetGroup.Post("/restore", assetHandlers.BulkRestore)
	assetGroup.Get("/:id", assetHandlers.Get)
	assetGroup.Put("/:id", assetHandlers.Update)
	assetGroup.Delete("/:id", assetHandlers.Delete)
	assetGroup.Post("/:id/restore", assetHandlers.Restore)
	api.Post("/company-info", assetHandlers.UpsertCompanyInfo)

	lifecycleHandlers := &lifecycle.Handlers{Service: lifecycleService}
	api.Post("/checkouts", lifecycleHandlers.Checkout)
	api.Post("/checkins", lifecycleHandlers.Checkin)
	api.Post("/reservations", lifecycleHandlers.Reserve)
	api.Delete("/reservations/:id", lifecycleHandlers.CancelReservation)
	api.Post("/disposals", lifecycleHandlers.Dispose)
	api.Post("/schedules", lifecycleHandlers.CreateSchedule)
	api.Put("/schedules/:id", lifecycleHandlers.UpdateSchedule)
	api.Delete("/schedules/:id", lifecycleHandlers.DeleteSchedule)
	api.Post("/maintenances", lifecycleHandlers.CreateMaintenance)
	api.Put("/maintenances/:id", lifecycleHandlers.UpdateMaintenance)
	api.Delete("/maintenances/:id", lifecycleHandlers.DeleteMaintenance)
	api.Post("/lease-returns", lifecycleHandlers.ReturnLease)

	inventoryHandlers := &inventory.Handlers{Service: inventoryService}
	inventoryGroup := api.Group("/inventory")
	inventoryGroup.Get("/", inventoryHandlers.ListItems)
	inventoryGroup.Post("/", inventoryHandlers.CreateItem)
	inventoryGroup.Post("/bulk-restore", inventoryHandlers.BulkRestoreItems)
	inventoryGroup.Get("/:id", inventoryHandlers.GetItem)
	inventoryGroup.Put("/:id", inventoryHandlers.UpdateItem)
	inventoryGroup.Delete("/:id", inventoryHandlers.DeleteItem)
	inventoryGroup.Post("/:id/restore", inventoryHandlers.RestoreItem)
	inventoryGroup.Get("/:id/transactions", inventoryHandlers.ListTransactions)
	inventoryGroup.Post("/:id/transactions", inventoryHandlers.RecordTransaction)
	inventoryGroup.Delete("/:id/transactions", inventoryHandlers.BulkDeleteTransactions)

	historyHandlers := &history.Handlers{Service: historyService}
	api.Get("/assets/:id/history", historyHandlers.ForAsset)
	api.Get("/activity", historyHandlers.Recent)

	reportHandlers := &reports.Handlers{Service: reportService}
	reportGroup := api.Group("/reports")
	reportGroup.Get("/dashboard", reportHandlers.Dashboard)
	reportGroup.Get("/depreciation", reportHandlers.Depreciation)
	reportGroup.Get("/checkouts", reportHandlers.Checkouts)
	reportGroup.Get("/reservations", reportHandlers.Reservations)
	reportGroup.Get("/disposals", reportHandlers.Disposals)
	reportGroup.Get("/maintenance", reportHandlers.Maintenance)
	reportGroup.Get("/lease-returns", reportHandlers.LeaseReturns)

	return app
}

// NewRedis builds a Redis client from the configured URL. An empty URL
// returns nil; a malformed URL is logged and treated the same so a bad cache
// config never blocks the API.
func NewRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URL, running without cache")
		return nil
	}
	return redis.NewClient(opts)
}
