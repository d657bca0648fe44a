package dto

// DateLayout 影片上映日期的序列化格式
const DateLayout = "2006-01-02"

// FilmListItem 影片列表项
type FilmListItem struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	ReleaseDate  string `json:"release_date"`
	CommentCount int64  `json:"comment_count"`
}

// FilmDetail 影片详情（含全部评论）
type FilmDetail struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	EpisodeID    int            `json:"episode_id"`
	OpeningCrawl string         `json:"opening_crawl"`
	Director     string         `json:"director"`
	Producer     string         `json:"producer"`
	ReleaseDate  string         `json:"release_date"`
	CommentCount int64          `json:"comment_count"`
	Comments     []*CommentItem `json:"comments"`
}
