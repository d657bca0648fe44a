package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// SwapiFilm 上游影片夹具
type SwapiFilm struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	EpisodeID    int    `json:"episode_id"`
	OpeningCrawl string `json:"opening_crawl"`
	Director     string `json:"director"`
	Producer     string `json:"producer"`
	ReleaseDate  string `json:"release_date"`
}

// SwapiFilms 返回与 swapi.dev 一致的六部影片（刻意不按上映日期排序）
func SwapiFilms() []SwapiFilm {
	return []SwapiFilm{
		{URL: "https://swapi.dev/api/films/1/", Title: "A New Hope", EpisodeID: 4, OpeningCrawl: "It is a period of civil war.", Director: "George Lucas", Producer: "Gary Kurtz, Rick McCallum", ReleaseDate: "1977-05-25"},
		{URL: "https://swapi.dev/api/films/2/", Title: "The Empire Strikes Back", EpisodeID: 5, OpeningCrawl: "It is a dark time for the Rebellion.", Director: "Irvin Kershner", Producer: "Gary Kurtz, Rick McCallum", ReleaseDate: "1980-05-17"},
		{URL: "https://swapi.dev/api/films/3/", Title: "Return of the Jedi", EpisodeID: 6, OpeningCrawl: "Luke Skywalker has returned to his home planet of Tatooine.", Director: "Richard Marquand", Producer: "Howard G. Kazanjian, George Lucas, Rick McCallum", ReleaseDate: "1983-05-25"},
		{URL: "https://swapi.dev/api/films/4/", Title: "The Phantom Menace", EpisodeID: 1, OpeningCrawl: "Turmoil has engulfed the Galactic Republic.", Director: "George Lucas", Producer: "Rick McCallum", ReleaseDate: "1999-05-19"},
		{URL: "https://swapi.dev/api/films/6/", Title: "Revenge of the Sith", EpisodeID: 3, OpeningCrawl: "War! The Republic is crumbling under attacks by the ruthless Sith Lord, Count Dooku.", Director: "George Lucas", Producer: "Rick McCallum", ReleaseDate: "2005-05-19"},
		{URL: "https://swapi.dev/api/films/5/", Title: "Attack of the Clones", EpisodeID: 2, OpeningCrawl: "There is unrest in the Galactic Senate.", Director: "George Lucas", Producer: "Rick McCallum", ReleaseDate: "2002-05-16"},
	}
}

// FakeSwapi 模拟 SWAPI 的测试服务器
type FakeSwapi struct {
	Server *httptest.Server

	mu     sync.Mutex
	films  []SwapiFilm
	status int

	listCalls atomic.Int32
	filmCalls atomic.Int32
}

// NewFakeSwapi 启动模拟服务器，测试结束自动关闭
func NewFakeSwapi(t *testing.T, films []SwapiFilm) *FakeSwapi {
	t.Helper()

	f := &FakeSwapi{films: films, status: http.StatusOK}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL 基础地址
func (f *FakeSwapi) URL() string {
	return f.Server.URL
}

// SetFilms 替换上游数据
func (f *FakeSwapi) SetFilms(films []SwapiFilm) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.films = films
}

// SetStatus 让后续请求返回指定状态码
func (f *FakeSwapi) SetStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// ListCalls 列表接口调用次数
func (f *FakeSwapi) ListCalls() int {
	return int(f.listCalls.Load())
}

// FilmCalls 单片接口调用次数
func (f *FakeSwapi) FilmCalls() int {
	return int(f.filmCalls.Load())
}

func (f *FakeSwapi) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	films := f.films
	status := f.status
	f.mu.Unlock()

	path := strings.Trim(r.URL.Path, "/")
	switch {
	case path == "films":
		f.listCalls.Add(1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		writeJSON(w, map[string]interface{}{
			"count":    len(films),
			"next":     nil,
			"previous": nil,
			"results":  films,
		})
	case strings.HasPrefix(path, "films/"):
		f.filmCalls.Add(1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		id, err := strconv.Atoi(strings.TrimPrefix(path, "films/"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		for _, film := range films {
			if strings.HasSuffix(strings.TrimSuffix(film.URL, "/"), "/"+strconv.Itoa(id)) {
				writeJSON(w, film)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
