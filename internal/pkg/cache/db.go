package cache

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/swapi_films_server/internal/model"
)

// DBCache 基于 cache_entries 表的缓存，多进程共享同一数据库时即为共享缓存
type DBCache struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDBCache(db *gorm.DB) *DBCache {
	return &DBCache{db: db, now: time.Now}
}

func (c *DBCache) Get(ctx context.Context, key string) ([]byte, bool) {
	var entry model.CacheEntry
	err := c.db.WithContext(ctx).Where(map[string]interface{}{"key": key}).First(&entry).Error
	if err != nil || c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Value, true
}

func (c *DBCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := model.CacheEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: c.now().Add(ttl),
	}

	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *DBCache) Delete(ctx context.Context, key string) error {
	if err := c.db.WithContext(ctx).Where(map[string]interface{}{"key": key}).Delete(&model.CacheEntry{}).Error; err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Prune 删除所有过期条目，返回删除数量
func (c *DBCache) Prune(ctx context.Context) (int64, error) {
	result := c.db.WithContext(ctx).Where("expires_at < ?", c.now()).Delete(&model.CacheEntry{})
	if result.Error != nil {
		return 0, fmt.Errorf("cache prune: %w", result.Error)
	}
	return result.RowsAffected, nil
}
