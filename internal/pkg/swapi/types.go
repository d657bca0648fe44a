package swapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReleaseDateLayout SWAPI 的 release_date 格式
const ReleaseDateLayout = "2006-01-02"

// Film SWAPI 影片记录
type Film struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	EpisodeID    int    `json:"episode_id"`
	OpeningCrawl string `json:"opening_crawl"`
	Director     string `json:"director"`
	Producer     string `json:"producer"`
	ReleaseDate  string `json:"release_date"`
}

// ExternalID 从记录自身的 url 中解析外部 ID（最后一段路径）
func (f *Film) ExternalID() (int, error) {
	trimmed := strings.Trim(f.URL, "/")
	if trimmed == "" {
		return 0, fmt.Errorf("film %q: empty url", f.Title)
	}

	segment := trimmed[strings.LastIndex(trimmed, "/")+1:]
	id, err := strconv.Atoi(segment)
	if err != nil {
		return 0, fmt.Errorf("film %q: invalid id in url %q: %w", f.Title, f.URL, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("film %q: non-positive id in url %q", f.Title, f.URL)
	}
	return id, nil
}

// ReleaseDateTime 解析 YYYY-MM-DD 格式的上映日期
func (f *Film) ReleaseDateTime() (time.Time, error) {
	t, err := time.Parse(ReleaseDateLayout, f.ReleaseDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("film %q: invalid release_date %q: %w", f.Title, f.ReleaseDate, err)
	}
	return t, nil
}

// filmPage SWAPI 列表接口的分页结构
type filmPage struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Film  `json:"results"`
}
