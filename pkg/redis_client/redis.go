package redis_client

import (
	"context"

	"github.com/ecocitty/ecocitty/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Connect returns a nil client when no Redis address is configured.
func Connect(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddress == "" {
		log.Info().Msg("Skipping Redis setup")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDatabase,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Info().Str("address", cfg.RedisAddress).Msg("Connected to Redis")

	return client, nil
}
