// Package pagination 实现页码分页：参数解析、越界校验与 next/previous 链接
package pagination

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	PageParam     = "page"
	PageSizeParam = "page_size"

	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrInvalidPage = errors.New("invalid page")

// Params 已校验的分页参数
type Params struct {
	Page     int
	PageSize int
}

// Offset 当前页的起始偏移
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Paginator 持有默认与最大页大小
type Paginator struct {
	DefaultPageSize int
	MaxPageSize     int
}

// New 创建分页器，非正数使用默认值
func New(defaultPageSize, maxPageSize int) *Paginator {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if maxPageSize <= 0 {
		maxPageSize = MaxPageSize
	}
	if defaultPageSize > maxPageSize {
		defaultPageSize = maxPageSize
	}
	return &Paginator{DefaultPageSize: defaultPageSize, MaxPageSize: maxPageSize}
}

// Parse 解析 page / page_size 查询参数
// page 非整数或小于 1 返回 ErrInvalidPage；page_size 非法时回落到默认值，超过上限时截断
func (p *Paginator) Parse(query url.Values) (Params, error) {
	params := Params{Page: 1, PageSize: p.DefaultPageSize}

	if raw := strings.TrimSpace(query.Get(PageParam)); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, ErrInvalidPage
		}
		params.Page = page
	}

	if raw := strings.TrimSpace(query.Get(PageSizeParam)); raw != "" {
		size, err := strconv.Atoi(raw)
		if err == nil && size > 0 {
			if size > p.MaxPageSize {
				size = p.MaxPageSize
			}
			params.PageSize = size
		}
	}

	return params, nil
}

// NumPages 总页数，空结果集也算 1 页
func NumPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// Check 页码超出范围时返回 ErrInvalidPage
func (p Params) Check(total int64) error {
	if p.Page > NumPages(total, p.PageSize) {
		return ErrInvalidPage
	}
	return nil
}

// Page 分页响应信封
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPage 根据请求地址生成带 next/previous 链接的分页结果
func NewPage(r *http.Request, params Params, total int64, results interface{}) *Page {
	page := &Page{
		Count:   total,
		Results: results,
	}

	base := RequestURL(r)
	if params.Page < NumPages(total, params.PageSize) {
		next := withPage(base, params.Page+1)
		page.Next = &next
	}
	if params.Page > 1 {
		prev := withPage(base, params.Page-1)
		page.Previous = &prev
	}
	return page
}

// RequestURL 还原请求的绝对地址，支持反向代理的 X-Forwarded-Proto / X-Forwarded-Host
func RequestURL(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}

	return &url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
}

// withPage 替换 page 参数；第 1 页省略 page 参数
func withPage(base *url.URL, page int) string {
	u := *base
	q := u.Query()
	if page <= 1 {
		q.Del(PageParam)
	} else {
		q.Set(PageParam, strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
