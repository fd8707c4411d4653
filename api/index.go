package handler

import (
	"net/http"
	"sync"
	"todoapp/config"
	"todoapp/di"
	"todoapp/shared/logger"
	"todoapp/transport/http/response"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	server  http.Handler
	initErr error
)

// Handler serves a single request on a serverless runtime. Connections are
// built on the first call and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server, _, initErr = di.InitializeService()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		response.WithUnhealthy(w)

		return
	}

	server.ServeHTTP(w, r)
}
