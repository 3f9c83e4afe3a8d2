package census

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/mithunb9/RealRisk/internal/observability"
)

// Store is the key-value backend the fact cache persists records in.
// Implemented by pkg/cache.Cache.
type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Fetcher fetches facts from the upstream census source on a cache miss.
// A nil record with a nil error means the upstream has no data for the zip.
type Fetcher interface {
	FetchFacts(ctx context.Context, zip string) (*FactRecord, error)
}

// FactCache memoizes one FactRecord per GeoKey. Entries are written once and
// reused across requests; negative results are never cached so a later retry
// can succeed once upstream data appears. Concurrent misses for the same key
// may both fetch and write, last write wins. Fetched values for a key are
// deterministic, so no locking is needed.
type FactCache struct {
	store   Store
	fetcher Fetcher
	clock   clockwork.Clock
	ttl     time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// CacheOption configures a FactCache.
type CacheOption func(*FactCache)

// WithTTL bounds entry staleness. Zero means entries never expire.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *FactCache) { c.ttl = ttl }
}

// WithClock injects the clock used to stamp and age records.
func WithClock(clock clockwork.Clock) CacheOption {
	return func(c *FactCache) { c.clock = clock }
}

// WithMetrics wires cache lookup counters.
func WithMetrics(m *observability.Metrics) CacheOption {
	return func(c *FactCache) { c.metrics = m }
}

// NewFactCache creates a read-through fact cache over store and fetcher.
func NewFactCache(store Store, fetcher Fetcher, logger *zap.Logger, opts ...CacheOption) *FactCache {
	if store == nil {
		panic("store must not be nil")
	}
	if fetcher == nil {
		panic("fetcher must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &FactCache{
		store:   store,
		fetcher: fetcher,
		clock:   clockwork.NewRealClock(),
		logger:  logger.Named("fact-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetFacts returns the facts for zip, fetching and storing them on a miss.
// A nil record with nil error means the upstream has no data for the key.
func (c *FactCache) GetFacts(ctx context.Context, zip string) (*FactRecord, error) {
	key, err := NormalizeZip(zip)
	if err != nil {
		return nil, fmt.Errorf("normalize zip %q: %w", zip, err)
	}
	cacheKey := "census:facts:" + key

	var cached FactRecord
	if err := c.store.Get(ctx, cacheKey, &cached); err == nil {
		switch {
		case !cached.Valid():
			// Malformed cached data is treated as missing, refetch below.
			c.logger.Warn("cached record failed validation", zap.String("zip", key))
		case c.expired(&cached):
			c.count("stale")
		default:
			c.count("hit")
			return &cached, nil
		}
	}
	c.count("miss")

	record, err := c.fetcher.FetchFacts(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch facts for %s: %w", key, err)
	}
	if record == nil {
		// No negative caching: a later retry may succeed once upstream
		// data becomes available.
		return nil, nil
	}

	stamped := *record
	stamped.FetchedAt = c.clock.Now().UTC()
	if err := c.store.Set(ctx, cacheKey, &stamped, c.ttl); err != nil {
		c.logger.Warn("failed to store facts", zap.String("zip", key), zap.Error(err))
	}
	return &stamped, nil
}

func (c *FactCache) expired(r *FactRecord) bool {
	if c.ttl <= 0 || r.FetchedAt.IsZero() {
		return false
	}
	return c.clock.Since(r.FetchedAt) > c.ttl
}

func (c *FactCache) count(result string) {
	if c.metrics != nil {
		c.metrics.FactCacheLookups.WithLabelValues(result).Inc()
	}
}
