package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mnavy-api/internal/domain"
)

const (
	// KeyResponseBody 重建后的响应体在 gin 上下文里的键
	KeyResponseBody = "responseBody"

	passwordMask      = "**********"
	binaryPlaceholder = `{"body":"[Binary data]"}`
	maxCapturedBody   = 1 << 20 // 审计留存的请求体上限
)

// AuditRecorder 审计落库接口，测试里用内存实现替换
type AuditRecorder interface {
	Record(ctx context.Context, a *domain.AuditTrail) error
}

// bodyCapture 包一层 ResponseWriter，把写出的每个分片都缓冲下来，
// 客户端收到的内容不受影响。
type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Audit 每个完成的 HTTP 事务落一行审计。写库在响应刷出之后异步进行，
// 失败只记日志，不重试也不影响客户端。
func Audit(rec AuditRecorder, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()

		// 先捞前 maxCapturedBody 字节做审计副本，再把完整流拼回去：
		// handler 读到的必须是未截断的原始请求体
		var reqBody []byte
		if c.Request.Body != nil {
			rest := c.Request.Body
			reqBody, _ = io.ReadAll(io.LimitReader(rest, maxCapturedBody))
			c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(reqBody), rest))
		}

		w := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		duration := time.Since(start).Milliseconds()
		claims := Identity(c)

		entry := &domain.AuditTrail{
			Method:         c.Request.Method,
			Path:           c.Request.URL.RequestURI(),
			Body:           sanitizeBody(reqBody),
			Query:          c.Request.URL.RawQuery,
			Headers:        marshalHeaders(c.Request.Header),
			ResponseStatus: w.Status(),
			Duration:       duration,
		}
		if claims != nil {
			ut := claims.UserType
			entry.UserType = &ut
			id := claims.ID
			if claims.UserType == domain.RoleAdmin {
				entry.ApplicationAdminID = &id
			} else {
				entry.UserID = &id
			}
		}
		// 重建响应体挂到上下文，便于下游排查；审计行本身不落响应体
		c.Set(KeyResponseBody, decodeCaptured(&w.buf))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := rec.Record(ctx, entry); err != nil {
				l.Error("error saving audit log", zap.Error(err))
			}
		}()
	}
}

// sanitizeBody 审计留存前做两件事：密码字段打码、二进制内容换占位符。
// 打码只发生在留存副本上，handler 看到的是原文。
func sanitizeBody(body []byte) string {
	if len(body) == 0 {
		return "{}"
	}
	if bytes.IndexByte(body, 0) >= 0 || !utf8.Valid(body) {
		return binaryPlaceholder
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return string(body)
	}
	if _, ok := m["password"]; ok {
		m["password"] = passwordMask
		if b, err := json.Marshal(m); err == nil {
			return string(b)
		}
	}
	return string(body)
}

func marshalHeaders(h http.Header) string {
	masked := make(map[string]string, len(h))
	for k, v := range h {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			masked[k] = passwordMask
			continue
		}
		masked[k] = strings.Join(v, ", ")
	}
	b, err := json.Marshal(masked)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// decodeCaptured 尽力把缓冲的响应体解码成文本，二进制换占位符
func decodeCaptured(buf *bytes.Buffer) string {
	b := buf.Bytes()
	if bytes.IndexByte(b, 0) >= 0 || !utf8.Valid(b) {
		return binaryPlaceholder
	}
	return string(b)
}
