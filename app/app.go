package app

import (
	"context"
	"os"
	"strconv"
	"time"

	"Gin_excel_redis_asset_tool/db"
	"Gin_excel_redis_asset_tool/session"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Aliases so handlers stay short.
type Ctx = gin.Context
type H = gin.H

// App aggregates the shared dependencies.
type App struct {
	Router  *gin.Engine
	RDB     *redis.Client // nil when redis is not configured
	Repo    *db.Repo
	Unlocks session.Store
	Config  Config
}

// Config comes from the environment.
type Config struct {
	DataDir      string
	RedisAddr    string
	RedisPwd     string
	WebOrigin    string
	AuthHash     string // SHA-256 of the unlock file, hex
	UnlockWindow time.Duration
}

func MustNew() *App {
	cfg := loadConfig()

	logger := mustLogger()
	zap.ReplaceGlobals(logger)

	tables, err := db.OpenTables(cfg.DataDir)
	if err != nil {
		zap.S().Fatalf("open tables: %v", err)
	}

	// --- Redis (optional): unlock sessions fall back to memory ---
	var rdb *redis.Client
	var unlocks session.Store
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zap.S().Fatalf("redis: %v", err)
		}
		unlocks = session.NewRedisStore(rdb, cfg.UnlockWindow)
	} else {
		zap.S().Warn("REDIS_ADDR not set, unlock sessions are in-memory only")
		unlocks = session.NewMemoryStore(cfg.UnlockWindow)
	}

	// --- Gin ---
	r := gin.New()
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	useCORS(r, cfg.WebOrigin)

	a := &App{
		Router:  r,
		RDB:     rdb,
		Repo:    db.NewRepo(tables),
		Unlocks: unlocks,
		Config:  cfg,
	}
	ReportTables(a)
	return a
}

func (a *App) Close() {
	if a.RDB != nil {
		_ = a.RDB.Close()
	}
	_ = zap.L().Sync()
}

func mustLogger() *zap.Logger {
	var logger *zap.Logger
	var err error
	if gin.Mode() == gin.ReleaseMode {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}

	// 15 minute default, same as the desktop tool's window
	window := 15 * time.Minute
	if secs, err := strconv.Atoi(get("AUTH_WINDOW_SECONDS", "")); err == nil && secs > 0 {
		window = time.Duration(secs) * time.Second
	}

	return Config{
		DataDir:      get("DATA_DIR", "data"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPwd:     os.Getenv("REDIS_PASSWORD"),
		WebOrigin:    get("WEB_ORIGIN", "http://localhost:5173"),
		AuthHash:     os.Getenv("AUTH_SHA256"),
		UnlockWindow: window,
	}
}
