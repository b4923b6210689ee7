package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"mnavy-api/internal/core/auth"
	"mnavy-api/internal/core/cache"
	"mnavy-api/internal/core/config"
	"mnavy-api/internal/core/database"
	"mnavy-api/internal/core/logger"
	"mnavy-api/internal/core/mailer"
	"mnavy-api/internal/core/storage"
	"mnavy-api/internal/domain"
	"mnavy-api/internal/repo"
	"mnavy-api/internal/transport/http/handler"
	"mnavy-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	var log *zap.Logger
	var flush func()
	if cfg.Log.File != "" {
		log, flush = logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Filename:   cfg.Log.File,
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		})
	} else {
		log, flush = logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	defer flush()

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Sugar().Infof(format, args...)
	})); err != nil {
		log.Warn("maxprocs", zap.Error(err))
	}

	db, err := database.New(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("database open", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.ApplicationAdmin{}, &domain.AuditTrail{}); err != nil {
			log.Fatal("auto migrate", zap.Error(err))
		}
	}

	// 启动时打一份连接池画像，方便排查连接耗尽
	if stats, err := database.CollectStats(context.Background(), db); err != nil {
		log.Warn("pool stats", zap.Error(err))
	} else {
		log.Info("database connected",
			zap.Int("maxConn", stats.MaxConn),
			zap.Int("used", stats.Used),
			zap.Int("active", stats.Active),
			zap.Int("idle", stats.Idle),
			zap.Int("idleInTxn", stats.IdleInTxn),
			zap.Int("utilizationPct", stats.Utilization),
		)
	}

	var ch *cache.Cache
	if cfg.IsRedisConfigured() {
		ch = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.App.Name,
		TTL:    time.Duration(cfg.JWT.ExpiresInDays) * 24 * time.Hour,
	}

	blob, err := storage.New(cfg.Azure.URL, cfg.Azure.AccessKey, cfg.Azure.SecretAccessKey)
	if err != nil {
		log.Fatal("azure storage", zap.Error(err))
	}

	mail := mailer.New(cfg.App.Name, mailer.Credentials{
		User:         cfg.Email.User,
		ClientID:     cfg.Email.ClientID,
		ClientSecret: cfg.Email.ClientSecret,
		RefreshToken: cfg.Email.RefreshToken,
		AccessToken:  cfg.Email.AccessToken,
	}, log)
	if cfg.IsEmailConfigured() && cfg.IsDevelopment() {
		// 开发环境启动时发一封自检邮件验证网关连通性
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			tpl := mailer.TestTemplate(cfg.Email.User)
			mail.Send(ctx, cfg.Email.User, tpl.Subject, tpl.Body)
		}()
	}

	users := repo.NewUserRepo(db)
	admins := repo.NewAdminRepo(db)
	audits := repo.NewAuditRepo(db)

	engine := router.New(router.Deps{
		Cfg:    cfg,
		Log:    log,
		JWT:    jwter,
		Users:  handler.NewUserHandler(users, jwter, ch, blob, mail, log),
		Admins: handler.NewAdminHandler(admins, jwter, cfg),
		Audit:  audits,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
