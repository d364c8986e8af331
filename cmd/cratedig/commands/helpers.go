package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/cratedig/cratedig/internal/config"
	"github.com/cratedig/cratedig/internal/lastfm"
	"github.com/cratedig/cratedig/internal/printer"
	"github.com/redis/go-redis/v9"
)

// loadConfig resolves and loads the configuration for a command.
func loadConfig(explicitPath string) (*config.Config, error) {
	path, err := config.Find(explicitPath)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// newProvider builds the provider client from configuration, wiring in the
// Redis response cache when enabled. The returned cleanup closes the cache
// connection and is safe to call unconditionally.
func newProvider(cfg *config.Config) (*lastfm.Client, func(), error) {
	cleanup := func() {}

	var cache *lastfm.Cache
	if cfg.Cache != nil && cfg.Cache.Enabled {
		cache = lastfm.NewCache(&redis.Options{Addr: cfg.Cache.Addr}, cfg.Cache.TTL)
		cleanup = func() { cache.Close() }

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			printer.Warning("response cache at %s is unreachable, lookups will go straight to the provider: %v\n", cfg.Cache.Addr, err)
		}
	}

	client, err := lastfm.New(lastfm.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Autocorrect: cfg.Autocorrect,
		Cache:       cache,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("build provider client: %w", err)
	}
	return client, cleanup, nil
}
