package demomode

import (
	"context"
	"errors"
	"strconv"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheKey = "ecocitty/demo-mode"

// CacheSwitch keeps the mode in a shared cache so every process behind the same Redis sees the
// same toggle. Until the key is first written the configured default applies.
type CacheSwitch struct {
	Cache   cache.CacheInterface[string]
	Default bool
}

func NewRedisSwitch(client *redis.Client, defaultEnabled bool) *CacheSwitch {
	redisStore := redisstore.NewRedis(client)

	return &CacheSwitch{
		Cache:   cache.New[string](redisStore),
		Default: defaultEnabled,
	}
}

func (s *CacheSwitch) Enabled(ctx context.Context) (bool, error) {
	value, err := s.Cache.Get(ctx, cacheKey)
	if errors.Is(err, store.NotFound{}) {
		return s.Default, nil
	}
	if err != nil {
		return s.Default, err
	}

	enabled, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Str("value", value).Msg("Ignoring unreadable demo mode value")
		return s.Default, nil
	}

	return enabled, nil
}

func (s *CacheSwitch) Set(ctx context.Context, enabled bool) error {
	return s.Cache.Set(ctx, cacheKey, strconv.FormatBool(enabled))
}

func (s *CacheSwitch) Toggle(ctx context.Context) (bool, error) {
	current, err := s.Enabled(ctx)
	if err != nil {
		return current, err
	}

	if err := s.Set(ctx, !current); err != nil {
		return current, err
	}

	return !current, nil
}
