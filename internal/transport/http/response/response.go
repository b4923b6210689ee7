package response

import (
	"github.com/gin-gonic/gin"

	"mnavy-api/pkg/pagination"
)

// Body 统一响应：statusCode/message 始终在顶层
type Body struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// ListBody 列表响应，分页字段平铺在顶层
type ListBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	pagination.Envelope
}

func Send(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Body{StatusCode: status, Message: message, Data: data})
}

func OK(c *gin.Context, message string, data any) {
	Send(c, 200, message, data)
}

func Created(c *gin.Context, message string, data any) {
	Send(c, 201, message, data)
}

func List(c *gin.Context, message string, env pagination.Envelope) {
	c.JSON(200, ListBody{StatusCode: 200, Message: message, Envelope: env})
}
