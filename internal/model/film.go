package model

import (
	"time"
)

// Film 从 SWAPI 同步到本地的影片，swapi_id 唯一
type Film struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	SwapiID      int       `gorm:"column:swapi_id;uniqueIndex;not null" json:"swapi_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	EpisodeID    int       `gorm:"not null" json:"episode_id"`
	OpeningCrawl string    `gorm:"type:text" json:"opening_crawl"`
	Director     string    `gorm:"size:255" json:"director"`
	Producer     string    `gorm:"size:255" json:"producer"`
	ReleaseDate  time.Time `gorm:"type:date;index" json:"release_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Film) TableName() string {
	return "films"
}

// FilmSyncColumns 同步时整体覆盖的字段
var FilmSyncColumns = []string{
	"title",
	"episode_id",
	"opening_crawl",
	"director",
	"producer",
	"release_date",
	"updated_at",
}
