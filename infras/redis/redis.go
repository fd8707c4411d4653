package redis

import (
	"context"
	"fmt"
	"net"
	"todoapp/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New connects to the primary Redis. The returned cleanup closes the client.
func New(config *config.Config) (*goRedis.Client, func(), error) {
	ctx := context.Background()
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error().Err(err).Msg("Failed to connect to Redis")

		_ = client.Close()

		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis client")
		}
	}

	return client, cleanup, nil
}
