package persistence

import (
	"context"
	"strconv"
	"time"

	"profile_server/core/port/out"
	"profile_server/pkg/cache"
	"profile_server/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

const genderCacheKeyPrefix = "gender:name:"

// CachedGenderRepository is a read-through cache over a GenderRepository.
// The gender table is reference data, effectively immutable within process
// lifetime, so positive resolutions are safe to cache. Misses are never
// cached. A circuit breaker guards the redis round trips: when redis
// degrades, lookups fall straight through to the database.
type CachedGenderRepository struct {
	inner   out.GenderRepository
	cache   *cache.RedisCache
	breaker *gobreaker.CircuitBreaker
	ttl     time.Duration
}

// NewCachedGenderRepository wraps inner with a redis read-through cache.
func NewCachedGenderRepository(inner out.GenderRepository, redisClient *redis.Client, ttl time.Duration) *CachedGenderRepository {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "gender-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &CachedGenderRepository{
		inner:   inner,
		cache:   cache.NewRedisCache(redisClient),
		breaker: breaker,
		ttl:     ttl,
	}
}

// FindIDByName resolves through the cache, falling back to the inner
// repository on a miss or a degraded cache.
func (r *CachedGenderRepository) FindIDByName(ctx context.Context, name string) (int64, bool, error) {
	key := genderCacheKeyPrefix + name

	if id, ok := r.cacheGet(ctx, key); ok {
		return id, true, nil
	}

	id, found, err := r.inner.FindIDByName(ctx, name)
	if err != nil || !found {
		return 0, false, err
	}

	r.cacheSet(ctx, key, id)

	return id, true, nil
}

func (r *CachedGenderRepository) cacheGet(ctx context.Context, key string) (int64, bool) {
	var id int64
	hit := false

	_, err := r.breaker.Execute(func() (interface{}, error) {
		value, err := r.cache.Get(ctx, key)
		if err == redis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			// Unparseable entry; drop it and treat as a miss.
			_ = r.cache.Delete(ctx, key)
			return nil, nil
		}

		id = parsed
		hit = true
		return nil, nil
	})
	if err != nil {
		logger.WithError(err).Debug("gender cache read skipped")
		return 0, false
	}

	return id, hit
}

func (r *CachedGenderRepository) cacheSet(ctx context.Context, key string, id int64) {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.cache.Set(ctx, key, strconv.FormatInt(id, 10), r.ttl)
	})
	if err != nil {
		logger.WithError(err).Debug("gender cache write skipped")
	}
}
