package app

import (
	"context"
	"os"
	"time"

	"go_crm_backend/auth"
	"go_crm_backend/db"
	"go_crm_backend/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Shorthand aliases for handlers.
type Ctx = gin.Context
type H = gin.H

// App aggregates the process-wide dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Repo   *db.Repo
	Tokens *auth.Tokens
	Config Config

	sessions *session.Store
}

// Config is read from environment variables.
type Config struct {
	RedisAddr        string
	RedisPwd         string
	WebOrigin        string
	JWTSecret        string
	JWTRefreshSecret string
}

func (a *App) Sessions() *session.Store { return a.sessions }

func MustNew() *App {
	cfg := loadConfig()

	dbConn := db.ConnectDB()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis")
	}

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router:   r,
		DB:       dbConn,
		RDB:      rdb,
		Repo:     db.NewRepo(dbConn),
		Tokens:   auth.NewTokens(cfg.JWTSecret, cfg.JWTRefreshSecret),
		Config:   cfg,
		sessions: session.NewStore(rdb, auth.RefreshTokenTTL),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	cfg := Config{
		RedisAddr:        get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:         os.Getenv("REDIS_PASSWORD"),
		WebOrigin:        get("WEB_ORIGIN", "http://localhost:5173"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
	}
	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		log.Fatal().Msg("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}
	return cfg
}
