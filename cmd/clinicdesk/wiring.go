package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/config"
	"github.com/onehealth/clinicdesk/internal/domain/catalog"
	"github.com/onehealth/clinicdesk/internal/domain/location"
	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/cache"
	"github.com/onehealth/clinicdesk/internal/platform/db"
)

const pincodeCachePrefix = "clinicdesk:pincode:"

// newLookup builds the pincode lookup. With LOOKUP_CACHE_TTL set, answers
// are cached in Redis when REDIS_URL is given and in process otherwise.
func newLookup(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (location.Lookuper, func(), error) {
	client := location.NewClient(cfg.PincodeBaseURL, cfg.HTTPTimeout, logger)
	if cfg.LookupCacheTTL <= 0 {
		return client, func() {}, nil
	}

	if cfg.RedisURL != "" {
		store, err := cache.NewRedisStore(ctx, cfg.RedisURL, pincodeCachePrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("pincode cache: %w", err)
		}
		closeStore := func() {
			if err := store.Close(); err != nil {
				logger.Warn().Err(err).Msg("close pincode cache")
			}
		}
		return location.NewCachedLookup(client, store, cfg.LookupCacheTTL, logger), closeStore, nil
	}

	store := cache.NewMemoryStore(cfg.LookupCacheTTL, 2*cfg.LookupCacheTTL)
	return location.NewCachedLookup(client, store, cfg.LookupCacheTTL, logger), func() {}, nil
}

// newCatalog builds the medicine and disease catalog over the API. Its
// fallback is the Postgres master tables when DATABASE_URL is set and the
// embedded lists otherwise. The returned Pinger is nil without a database.
func newCatalog(ctx context.Context, cfg *config.Config, api apiclient.API, logger zerolog.Logger) (*catalog.Service, db.Pinger, func(), error) {
	if cfg.DatabaseURL == "" {
		fb, err := catalog.NewStaticFallback()
		if err != nil {
			return nil, nil, nil, err
		}
		return catalog.NewService(catalog.NewRemote(api), fb, logger), nil, func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("catalog database: %w", err)
	}
	logger.Info().Msg("connected to catalog database")
	svc := catalog.NewService(catalog.NewRemote(api), catalog.NewPGStore(pool), logger)
	return svc, pool, pool.Close, nil
}
