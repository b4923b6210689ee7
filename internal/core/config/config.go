package config

import (
	"log"

	"github.com/spf13/viper"
)

type App struct {
	Name string
	Env  string // development / production / test
	Port int
}

type Log struct {
	Level string
	JSON  bool
	File  string // 非空则写文件并按大小轮转
}

type JWT struct {
	Secret        string
	ExpiresInDays int
}

type DB struct {
	Driver             string // postgres（默认）/ mysql
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type AzureStorage struct {
	URL             string
	AccessKey       string
	SecretAccessKey string
}

type Email struct {
	User         string
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccessToken  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	App   App
	Log   Log
	JWT   JWT
	DB    DB
	Azure AzureStorage
	Email Email
	Redis Redis
}

// Load 从环境变量读取配置，缺必填项直接 Fatal（fail fast）。
// .env 由 main 里的 godotenv 预先加载。
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MIN", 30)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("REDIS_DB", 0)

	c := &Config{
		App: App{
			Name: mustString(v, "APP_NAME"),
			Env:  mustString(v, "NODE_ENV"),
			Port: mustInt(v, "PORT"),
		},
		Log: Log{
			Level: v.GetString("LOG_LEVEL"),
			JSON:  v.GetBool("LOG_JSON"),
			File:  v.GetString("LOG_FILE"),
		},
		JWT: JWT{
			Secret:        mustString(v, "JWT_SECRET"),
			ExpiresInDays: mustInt(v, "JWT_EXPIRES_IN_DAYS"),
		},
		DB: DB{
			Driver:             v.GetString("DB_DRIVER"),
			DSN:                mustString(v, "DATABASE_URL"),
			MaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetimeMin: v.GetInt("DB_CONN_MAX_LIFETIME_MIN"),
			AutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
			LogLevel:           v.GetString("DB_LOG_LEVEL"),
		},
		Azure: AzureStorage{
			URL:             mustString(v, "AZURE_STORAGE_URL"),
			AccessKey:       mustString(v, "AZURE_STORAGE_ACCESS_KEY"),
			SecretAccessKey: mustString(v, "AZURE_STORAGE_SECRET_ACCESS_KEY"),
		},
		Email: Email{
			User:         v.GetString("EMAIL_USER"),
			ClientID:     v.GetString("EMAIL_CLIENT_ID"),
			ClientSecret: v.GetString("EMAIL_CLIENT_SECRET"),
			RefreshToken: v.GetString("EMAIL_REFRESH_TOKEN"),
			AccessToken:  v.GetString("EMAIL_ACCESS_TOKEN"),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
	}

	if len(c.JWT.Secret) < 32 {
		log.Fatalf("FATAL ERROR: JWT_SECRET must be at least 32 characters long")
	}
	if c.JWT.ExpiresInDays <= 0 {
		log.Fatalf("FATAL ERROR: JWT_EXPIRES_IN_DAYS must be positive")
	}
	return c
}

func mustString(v *viper.Viper, key string) string {
	s := v.GetString(key)
	if s == "" {
		log.Fatalf("FATAL ERROR: %s environment variable is required", key)
	}
	return s
}

func mustInt(v *viper.Viper, key string) int {
	if v.GetString(key) == "" {
		log.Fatalf("FATAL ERROR: %s environment variable is required", key)
	}
	n := v.GetInt(key)
	if n == 0 && v.GetString(key) != "0" {
		log.Fatalf("FATAL ERROR: %s environment variable must be a valid number", key)
	}
	return n
}

func (c *Config) IsDevelopment() bool { return c.App.Env == "development" || c.App.Env == "dev" }
func (c *Config) IsProduction() bool  { return c.App.Env == "production" }
func (c *Config) IsTest() bool        { return c.App.Env == "test" }

// IsEmailConfigured OAuth2 凭据是否齐全（access token 可选，refresh 必须）
func (c *Config) IsEmailConfigured() bool {
	return c.Email.User != "" && c.Email.ClientID != "" &&
		c.Email.ClientSecret != "" && c.Email.RefreshToken != ""
}

func (c *Config) IsRedisConfigured() bool { return c.Redis.Addr != "" }
