package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/swapi_films_server/internal/pkg/pagination"
)

// 状态码对应的默认消息
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Invalid request.",
	http.StatusNotFound:            "Not found.",
	http.StatusInternalServerError: "Internal server error.",
}

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error string `json:"error"`
}

// DetailBody 分页越界等框架级错误的响应结构
type DetailBody struct {
	Detail string `json:"detail"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SuccessPage 分页成功响应
func SuccessPage(c *gin.Context, params pagination.Params, total int64, items interface{}) {
	c.JSON(http.StatusOK, pagination.NewPage(c.Request, params, total, items))
}

// Error 错误响应
func Error(c *gin.Context, status int, message string) {
	if message == "" {
		message = statusMessages[status]
	}
	c.JSON(status, ErrorBody{Error: message})
}

// ParamError 参数错误
func ParamError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// ValidationError 字段校验失败，响应体为 字段 -> 错误列表
func ValidationError(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, fields)
}

// NotFoundError 资源不存在
func NotFoundError(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InvalidPage 页码非法或越界
func InvalidPage(c *gin.Context) {
	c.JSON(http.StatusNotFound, DetailBody{Detail: "Invalid page."})
}

// ServerError 服务器错误
func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
