// Package cache memoizes market snapshots in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rahul4469/bizstart/internal/config"
	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/market"
	"github.com/rahul4469/bizstart/internal/metrics"
)

const keyPrefix = "bizstart:snapshot"

type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
}

// NewRedisClient connects to Redis from URL or address settings and pings it.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if !cfg.Enabled() {
		return nil, errors.New("redis url or address is required")
	}
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		if opts.DB == 0 {
			opts.DB = cfg.DB
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}, nil
}

// Key is the cache key for one exact input pair.
func Key(regionCode string, bt market.BusinessType) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, regionCode, bt)
}

// SnapshotCache serves market indicators from Redis, computing and storing
// them on a miss. A nil store disables caching. Redis failures are logged and
// fall through to computation.
type SnapshotCache struct {
	store store
	ttl   time.Duration
	log   *logger.Logger
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *SnapshotCache {
	c := &SnapshotCache{ttl: ttl, log: log}
	if client != nil {
		c.store = client
	}
	return c
}

// Indicators returns the indicators for the pair and whether they came from
// the cache. Invalid input is rejected before Redis is touched.
func (c *SnapshotCache) Indicators(ctx context.Context, regionCode, businessType string) (market.Indicators, bool, error) {
	if err := market.ValidateRegionCode(regionCode); err != nil {
		return market.Indicators{}, false, err
	}
	bt, err := market.ParseBusinessType(businessType)
	if err != nil {
		return market.Indicators{}, false, err
	}

	if c.store == nil {
		ind, err := market.Compute(regionCode, string(bt))
		return ind, false, err
	}

	key := Key(regionCode, bt)
	if ind, ok := c.lookup(ctx, key); ok {
		metrics.SnapshotLookups.WithLabelValues(metrics.LookupHit).Inc()
		return ind, true, nil
	}

	ind, err := market.Compute(regionCode, string(bt))
	if err != nil {
		return market.Indicators{}, false, err
	}
	c.save(ctx, key, ind)
	return ind, false, nil
}

func (c *SnapshotCache) lookup(ctx context.Context, key string) (market.Indicators, bool) {
	var ind market.Indicators

	raw, err := c.store.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.SnapshotLookups.WithLabelValues(metrics.LookupMiss).Inc()
		return ind, false
	}
	if err != nil {
		metrics.SnapshotLookups.WithLabelValues(metrics.LookupError).Inc()
		c.log.Warn(c.log.WithField(ctx, "cache_key", key), "snapshot cache read failed", err)
		return ind, false
	}
	if err := json.Unmarshal(raw, &ind); err != nil {
		metrics.SnapshotLookups.WithLabelValues(metrics.LookupError).Inc()
		c.log.Warn(c.log.WithField(ctx, "cache_key", key), "discarding corrupt snapshot cache entry", err)
		return ind, false
	}
	return ind, true
}

func (c *SnapshotCache) save(ctx context.Context, key string, ind market.Indicators) {
	payload, err := json.Marshal(ind)
	if err != nil {
		c.log.Warn(ctx, "snapshot encode failed", err)
		return
	}
	if err := c.store.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn(c.log.WithField(ctx, "cache_key", key), "snapshot cache write failed", err)
	}
}
