package main

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"yatube/internal/api/config"
	"yatube/internal/pkg/cron"
	"yatube/internal/pkg/database"
	"yatube/internal/pkg/kafka"
	"yatube/internal/pkg/logger"
	"yatube/internal/pkg/minio"
	"yatube/internal/pkg/redis"
	"yatube/internal/pkg/security"
	"yatube/internal/wire"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	// 初始化日志
	logger.InitLogger(cfg.Logstash)
	gin.SetMode(gin.ReleaseMode)
	security.Init(cfg.Security)

	// 数据库连接
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}
	if err = database.Migrate(db); err != nil {
		log.Error("Fatal error: failed to migrate database", "err", err)
		panic(err)
	}

	// Redis 连接
	rdb, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Error("Fatal error: failed to create redis connection", "err", err)
		panic(err)
	}

	// MinIO 连接
	images, err := minio.NewStore(context.Background(), cfg.MinIO)
	if err != nil {
		log.Error("Fatal error: failed to initialize MinIO", "err", err)
		panic(err)
	}

	// Kafka 生产者
	publisher, err := kafka.NewPublisher(cfg.Kafka)
	if err != nil {
		log.Error("Fatal error: failed to create kafka producer", "err", err)
		panic(err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Kafka producer close failed", "err", err)
		}
	}()

	// 依赖注入
	app, err := wire.BuildApplication(wire.Infra{
		DB:        db,
		Redis:     rdb,
		Images:    images,
		Publisher: publisher,
	}, cfg)
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	g.Go(func() error {
		return cron.Run(ctx, app.CronMgr)
	})

	// HTTP 服务器
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: app.Router,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}
	log.Info("App exited successfully.")
}
