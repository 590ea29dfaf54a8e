package cache

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

type RedisCache struct {
	client rueidis.Client
	prefix string
}

func NewRedisCache(client rueidis.Client, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	cmd := r.client.B().Get().Key(r.prefix + key).Build()
	result := r.client.Do(ctx, cmd)

	value, err := result.ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", false, nil
		}
		return "", false, err
	}

	return value, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	cmd := r.client.B().Set().Key(r.prefix + key).Value(value).Ex(ttl).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.prefix + key
	}

	cmd := r.client.B().Del().Key(prefixed...).Build()
	return r.client.Do(ctx, cmd).Error()
}
