package model

import (
	"time"
)

// CacheEntry 数据库缓存后端的存储行
type CacheEntry struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}

// All 返回需要自动迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&Film{},
		&Comment{},
		&CacheEntry{},
	}
}
