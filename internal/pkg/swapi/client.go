// Package swapi 是 SWAPI 影片目录的只读 HTTP 客户端
package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://swapi.dev/api"
	DefaultTimeout = 10 * time.Second

	// 跟随 next 链接的上限
	maxPages = 50
)

var (
	// ErrUpstreamUnavailable 网络错误或非 2xx 响应
	ErrUpstreamUnavailable = errors.New("swapi upstream unavailable")
	// ErrFilmNotFound 上游返回 404
	ErrFilmNotFound = errors.New("swapi film not found")
)

// Client SWAPI 客户端，不做内部重试
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option 配置 Client
type Option func(*Client)

// WithBaseURL 设置基础地址（测试用）
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient 设置自定义 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout 设置请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger 设置日志器
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log.With().Str("component", "swapi").Logger()
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAllFilms GET {base}/films/，跟随 next 链接读取全部分页
func (c *Client) FetchAllFilms(ctx context.Context) ([]Film, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	var films []Film
	next := c.baseURL + "/films/"

	for page := 0; next != "" && page < maxPages; page++ {
		var p filmPage
		if err := c.getJSON(ctx, next, &p); err != nil {
			return nil, err
		}
		films = append(films, p.Results...)

		next = ""
		if p.Next != nil && *p.Next != "" {
			u, err := base.Parse(*p.Next)
			if err != nil || u.Host != base.Host {
				c.log.Warn().Str("next", *p.Next).Msg("ignoring next link outside base host")
				break
			}
			next = u.String()
		}
	}

	if next != "" {
		c.log.Warn().Int("max_pages", maxPages).Str("next", next).Msg("film catalog exceeds page limit")
		return nil, fmt.Errorf("%w: film catalog exceeds %d pages", ErrUpstreamUnavailable, maxPages)
	}

	c.log.Debug().Int("count", len(films)).Msg("fetched films")
	return films, nil
}

// FetchFilm GET {base}/films/{id}/
func (c *Client) FetchFilm(ctx context.Context, id int) (*Film, error) {
	var film Film
	if err := c.getJSON(ctx, fmt.Sprintf("%s/films/%d/", c.baseURL, id), &film); err != nil {
		return nil, err
	}
	return &film, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrUpstreamUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w: GET %s", ErrUpstreamUnavailable, ErrFilmNotFound, endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: GET %s: status %d: %s", ErrUpstreamUnavailable, endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstreamUnavailable, endpoint, err)
	}
	return nil
}
