package location

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/platform/cache"
)

// CachedLookup serves repeated pincodes from a cache.Store. Cache errors
// are logged and the lookup falls through to the wrapped Lookuper. Empty
// results are not cached.
type CachedLookup struct {
	next   Lookuper
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCachedLookup(next Lookuper, store cache.Store, ttl time.Duration, logger zerolog.Logger) *CachedLookup {
	return &CachedLookup{next: next, store: store, ttl: ttl, logger: logger}
}

func (l *CachedLookup) Lookup(ctx context.Context, pin string) ([]GeographyRecord, error) {
	if !ValidPincode(pin) {
		return nil, ErrIncompletePincode
	}

	key := "pincode:" + pin
	if b, ok, err := l.store.Get(ctx, key); err != nil {
		l.logger.Warn().Err(err).Str("pin", pin).Msg("pincode cache read failed")
	} else if ok {
		var records []GeographyRecord
		if err := json.Unmarshal(b, &records); err == nil {
			return records, nil
		}
		l.logger.Warn().Str("pin", pin).Msg("discarding unreadable cached pincode")
	}

	records, err := l.next.Lookup(ctx, pin)
	if err != nil || len(records) == 0 {
		return records, err
	}

	if b, err := json.Marshal(records); err == nil {
		if err := l.store.Set(ctx, key, b, l.ttl); err != nil {
			l.logger.Warn().Err(err).Str("pin", pin).Msg("pincode cache write failed")
		}
	}
	return records, nil
}
