package router

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mnavy-api/internal/core/auth"
	"mnavy-api/internal/core/config"
	"mnavy-api/internal/domain"
	"mnavy-api/internal/transport/http/handler"
	"mnavy-api/internal/transport/http/middleware"
	"mnavy-api/internal/transport/http/response"
)

type Deps struct {
	Cfg    *config.Config
	Log    *zap.Logger
	JWT    *auth.JWTer
	Users  *handler.UserHandler
	Admins *handler.AdminHandler
	Audit  middleware.AuditRecorder
}

// New 组装全量中间件链和路由表
func New(d Deps) *gin.Engine {
	switch {
	case d.Cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case d.Cfg.IsTest():
		gin.SetMode(gin.TestMode)
	}

	e := gin.New()

	// 注册顺序即包裹顺序：先注册的在外层。
	// 审计在错误格式化外层才能拿到最终状态码；
	// 错误格式化在熔断/限流外层才能把它们的 c.Error 变成响应。
	// 最外层兜底：错误管道自身出问题时还能 500 收场
	e.Use(ginzap.RecoveryWithZap(d.Log, true))
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog(d.Log))
	e.Use(middleware.Metrics())
	e.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:7002",
			"http://localhost:7003",
			"http://localhost:8002",
			"http://localhost:8003",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization", "Ws-Scope-Id"},
		ExposeHeaders:    []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	e.Use(middleware.Audit(d.Audit, d.Log))
	e.Use(middleware.ErrorHandler(d.Log, d.Cfg.IsDevelopment()))
	e.Use(middleware.Recovery())
	e.Use(middleware.RateLimit(200, 400))
	e.Use(middleware.ConcurrencyLimit(300))
	e.Use(middleware.MaxBodyBytes(50 << 20))
	e.Use(middleware.Timeout(10 * time.Second))

	api := e.Group("/api")

	api.GET("/healthcheck", func(c *gin.Context) {
		response.OK(c, "Maritime Navy API is healthy.", nil)
	})

	admin := api.Group("/application-admin")
	{
		admin.POST("/login", d.Admins.Login)
		admin.POST("/register", d.Admins.Register)
	}

	user := api.Group("/user")
	{
		user.POST("/login", d.Users.Login)
		user.POST("/forgot-password", d.Users.ForgotPassword)
		user.POST("/reset-password", d.Users.ResetPassword)

		managed := user.Group("", middleware.AuthJWT(d.JWT), middleware.RequireAdmin())
		{
			managed.POST("", d.Users.Register)
			managed.GET("", d.Users.List)
			managed.GET("/:id", d.Users.Get)
			managed.PUT("/:id", d.Users.Update)
			managed.PUT("/status/:id", d.Users.ToggleStatus)
			managed.DELETE("/:id", d.Users.Delete)
		}

		// 头像本人（任一船务角色）或管理员均可改
		user.PUT("/avatar/:id",
			middleware.AuthJWT(d.JWT),
			middleware.RequireMaritimeRole(append(domain.MaritimeRoles, domain.RoleAdmin)...),
			d.Users.UploadAvatar,
		)
	}

	e.GET("/metrics", gin.WrapH(promhttp.Handler()))

	e.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"statusCode": 404,
			"message":    "You're lost, check your route ! Can't find " + c.Request.Method + " : " + c.Request.URL.Path + " on the server",
		})
	})

	return e
}
