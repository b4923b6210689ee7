package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"mnavy-api/internal/apperr"
)

// Recovery panic 转入统一错误管道，operational=false 并带上调用栈
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				ae := apperr.Internal(fmt.Sprint(rec), nil)
				ae.Stack = string(debug.Stack())
				_ = c.Error(ae)
				c.Abort()
			}
		}()
		c.Next()
	}
}
