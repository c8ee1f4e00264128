package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jengzang/tours-backend-go/internal/api"
	"github.com/jengzang/tours-backend-go/internal/cache"
	"github.com/jengzang/tours-backend-go/internal/config"
	"github.com/jengzang/tours-backend-go/internal/database"
	"github.com/jengzang/tours-backend-go/internal/logging"
)

func main() {
	// .env 可选
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Msg("Failed to load .env file")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	if cfg.Database.Driver == string(database.DialectSQLite) {
		dir := filepath.Dir(strings.TrimPrefix(strings.SplitN(cfg.Database.DSN, "?", 2)[0], "file:"))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logging.Fatal().Err(err).Str("dir", dir).Msg("Failed to create database directory")
		}
	}
	db, err := database.Open(ctx, database.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxTxRetries: cfg.Database.MaxTxRetries,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.NewMigrationManager(db).RunMigrations(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}

	tourCache, err := cache.New(ctx, cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize published tour cache")
	}
	if closer, ok := tourCache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// 初始化路由
	router := api.SetupRouter(cfg, api.Dependencies{
		DB:    db,
		Cache: tourCache,
		Stop:  ctx.Done(),
	})

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router,
	}

	// 启动服务器
	go func() {
		logging.Info().Str("addr", cfg.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Server shutdown failed")
	}
}
