package main

import (
	"todoapp/config"
	"todoapp/di"
	"todoapp/helper"
	"todoapp/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Todo API
// @version 1.0
// @description Todos and users over JSON. Every route is served under /v1 and /api.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer cleanup()

	http.Serve()
}
