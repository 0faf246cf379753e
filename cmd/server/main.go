package main

import (
	"context"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/cache"
	"github.com/sparkdate/spark-backend/internal/config"
	"github.com/sparkdate/spark-backend/internal/db"
	"github.com/sparkdate/spark-backend/internal/logger"
	"github.com/sparkdate/spark-backend/internal/server"
	"github.com/sparkdate/spark-backend/internal/service/chat"
	"github.com/sparkdate/spark-backend/internal/service/feed"
	"github.com/sparkdate/spark-backend/internal/service/match"
	"github.com/sparkdate/spark-backend/internal/service/profile"
	"github.com/sparkdate/spark-backend/internal/service/swipe"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(database, redisCache, log)

	registrars := []server.Registrar{
		profile.NewRegistrar(appCtx),
		swipe.NewRegistrar(appCtx),
		feed.NewRegistrar(appCtx),
		match.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
