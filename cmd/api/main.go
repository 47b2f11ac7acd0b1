package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assettrack-backend/internal/app"
	"assettrack-backend/internal/config"
	"assettrack-backend/internal/database"
	"assettrack-backend/internal/scheduler"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("database connected")

	rdb := app.NewRedis(cfg)
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, running without cache")
			rdb = nil
		} else {
			log.Info().Msg("redis connected")
		}
	}

	sched, err := scheduler.New(db, scheduler.Options{
		ReportSchedulesSpec: cfg.ReportSchedulesSpec,
		DueMaintenanceSpec:  cfg.DueMaintenanceSpec,
		Location:            time.FixedZone("report-local", cfg.ReportTimezoneOffset*3600),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler setup failed")
	}
	sched.Start()

	fiberApp := app.New(cfg, db, rdb)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := fiberApp.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	sched.Stop()
	if err := fiberApp.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
