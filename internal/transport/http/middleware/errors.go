package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mnavy-api/internal/apperr"
)

type devErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace,omitempty"`
	Error      string `json:"error,omitempty"`
}

type prodErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}

// ErrorHandler 终端错误格式化：handler 链里任何 c.Error 都在这里
// 变成唯一一份结构化 JSON。开发环境给全量信息，生产环境只给安全摘要。
func ErrorHandler(l *zap.Logger, isDevelopment bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		ae := apperr.Translate(c.Errors.Last().Err)

		// 格式化前一律先记日志
		l.Error("request failed",
			zap.Int("status", ae.StatusCode),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Bool("operational", ae.Operational),
			zap.Error(ae),
		)

		if isDevelopment {
			body := devErrorBody{
				StatusCode: ae.StatusCode,
				Message:    ae.Message,
				StackTrace: ae.Stack,
			}
			if ae.Err != nil {
				body.Error = ae.Err.Error()
			}
			c.JSON(ae.StatusCode, body)
			return
		}

		if ae.Operational {
			c.JSON(ae.StatusCode, prodErrorBody{StatusCode: ae.StatusCode, Message: ae.Message})
			return
		}
		// 非预期错误：统一文案，error 字段带调用栈
		c.JSON(ae.StatusCode, prodErrorBody{
			StatusCode: ae.StatusCode,
			Message:    "Something Went Wrong",
			Error:      ae.Stack,
		})
	}
}
