//go:build wireinject
// +build wireinject

package di

import (
	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/infras/postgres"
	"todoapp/infras/redis"
	"todoapp/internal/events"
	todoHandler "todoapp/internal/handlers/todo"
	userHandler "todoapp/internal/handlers/user"
	"todoapp/shared/cache"
	"todoapp/transport/http"
	"todoapp/transport/http/middleware"
	"todoapp/transport/http/router"

	todoRepository "todoapp/internal/domains/todo/repository"
	todoService "todoapp/internal/domains/todo/service"

	userRepository "todoapp/internal/domains/user/repository"
	userService "todoapp/internal/domains/user/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.Provide,
	redis.New,
	events.Provide,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var domains = wire.NewSet(
	todoDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	todoHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil, nil
}
