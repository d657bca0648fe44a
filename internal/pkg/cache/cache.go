// Package cache 提供带过期时间的键值缓存，Redis 与数据库两种后端
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/qs3c/swapi_films_server/config"
)

const (
	BackendRedis    = "redis"
	BackendDatabase = "database"
)

// Cache 尽力而为的缓存：Get 未命中、过期或出错都返回 false
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// New 按配置选择缓存后端
func New(cfg config.CacheConfig, db *gorm.DB, rdb *redis.Client) (Cache, error) {
	switch cfg.Backend {
	case BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("cache backend %q requires a redis client", cfg.Backend)
		}
		return NewRedisCache(rdb), nil
	case BackendDatabase, "":
		if db == nil {
			return nil, fmt.Errorf("cache backend %q requires a database", BackendDatabase)
		}
		return NewDBCache(db), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
	}
}
