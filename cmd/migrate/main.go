package main

import (
	"os"
	"todoapp/config"
	"todoapp/helper"
	"todoapp/shared/logger"

	"github.com/rs/zerolog/log"
)

const argLength = 2

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/step-up/down/drop) is required")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	if err := helper.Run(cfg, helper.Action(os.Args[1])); err != nil {
		log.Fatal().Err(err).Str("direction", os.Args[1]).Msg("Migration failed")
	}
}
