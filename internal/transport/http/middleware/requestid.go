package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const KeyRequestID = "X-Request-ID"

// 透传的请求 ID 上限，防止客户端塞超长串进日志和审计行
const maxRequestIDLen = 64

// RequestID 每个请求一个关联 ID：客户端带了合法的就透传，
// 否则生成 uuid。响应头和日志里都能看到同一个值。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if rid == "" || len(rid) > maxRequestIDLen {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}

// GetRequestID 给 handler 和下游中间件取关联 ID 用
func GetRequestID(c *gin.Context) string {
	return c.GetString(KeyRequestID)
}
