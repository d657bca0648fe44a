package model

import (
	"time"
)

type Comment struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	FilmID     int64     `gorm:"not null;index" json:"film"`
	Text       string    `gorm:"size:500;not null" json:"text"`
	AuthorName string    `gorm:"size:100;not null" json:"author_name"`
	AuthorIP   string    `gorm:"column:author_ip;size:45" json:"-"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	// 关联
	Film *Film `gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
