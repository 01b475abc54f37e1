// Package response 提供统一的 HTTP 响应封装
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body 统一响应结构
type Body struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Success 返回成功响应
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// ErrorWithStatus 返回带指定 HTTP 状态码的错误响应
func ErrorWithStatus(c *gin.Context, status int, message, detail string) {
	c.JSON(status, Body{
		Code:    status,
		Message: message,
		Detail:  detail,
	})
}
