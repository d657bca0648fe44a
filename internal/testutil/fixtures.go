package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/swapi_films_server/internal/model"
)

// TestFilm 创建测试影片
func TestFilm(t *testing.T, db *gorm.DB, opts ...func(*model.Film)) *model.Film {
	t.Helper()

	n := time.Now().UnixNano()
	film := &model.Film{
		SwapiID:      int(n % 1_000_000_000),
		Title:        fmt.Sprintf("Test Film %d", n%10000),
		EpisodeID:    4,
		OpeningCrawl: "It is a period of civil war.",
		Director:     "George Lucas",
		Producer:     "Gary Kurtz, Rick McCallum",
		ReleaseDate:  time.Date(1977, time.May, 25, 0, 0, 0, 0, time.UTC),
	}

	for _, opt := range opts {
		opt(film)
	}

	if err := db.Create(film).Error; err != nil {
		t.Fatalf("Failed to create test film: %v", err)
	}

	return film
}

// WithSwapiID 设置外部 ID
func WithSwapiID(id int) func(*model.Film) {
	return func(f *model.Film) {
		f.SwapiID = id
	}
}

// WithFilmTitle 设置影片标题
func WithFilmTitle(title string) func(*model.Film) {
	return func(f *model.Film) {
		f.Title = title
	}
}

// WithReleaseDate 设置上映日期（YYYY-MM-DD）
func WithReleaseDate(date string) func(*model.Film) {
	return func(f *model.Film) {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			panic(fmt.Sprintf("testutil: invalid release date %q", date))
		}
		f.ReleaseDate = d
	}
}

// TestComment 创建测试评论
func TestComment(t *testing.T, db *gorm.DB, filmID int64, text string, opts ...func(*model.Comment)) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		FilmID:     filmID,
		Text:       text,
		AuthorName: "Luke",
		AuthorIP:   "127.0.0.1",
	}

	for _, opt := range opts {
		opt(comment)
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	return comment
}

// WithCreatedAt 设置评论创建时间
func WithCreatedAt(at time.Time) func(*model.Comment) {
	return func(c *model.Comment) {
		c.CreatedAt = at
	}
}

// WithAuthor 设置评论作者
func WithAuthor(name string) func(*model.Comment) {
	return func(c *model.Comment) {
		c.AuthorName = name
	}
}
