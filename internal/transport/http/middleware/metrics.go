package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	apiReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mnavy",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Count of API requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)
	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mnavy",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request latency by route and method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"},
	)
)

func init() { prometheus.MustRegister(apiReqTotal, apiLatency) }

// Metrics 按注册的路由模板打点；未匹配到路由（404）统一归到 unmatched，
// 避免任意 URL 撑爆 label 基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		apiReqTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		apiLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
