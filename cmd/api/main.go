package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/api"
	"github.com/sanosuguru/go-seat-booking/internal/api/handler"
	"github.com/sanosuguru/go-seat-booking/internal/api/middleware"
	"github.com/sanosuguru/go-seat-booking/internal/application"
	"github.com/sanosuguru/go-seat-booking/internal/config"
	"github.com/sanosuguru/go-seat-booking/internal/infrastructure/kafka"
	"github.com/sanosuguru/go-seat-booking/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-seat-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/metrics"
	"github.com/sanosuguru/go-seat-booking/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.Init(cfg.Env)
	defer func() { _ = logger.Sync() }()

	m := metrics.Init()

	// DB接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗しました", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
			logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
		}
		logger.Info("マイグレーションを適用しました", zap.String("path", cfg.Database.MigrationsPath))
	}

	// Redis接続（キャッシュは副作用なので、落ちていても起動は続ける）
	redisClient := redisinfra.NewClient(&cfg.Redis)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redisに接続できません。キャッシュ書き込みは失敗として記録されます", zap.Error(err))
	}
	cancelPing()

	// 通知キュー
	if cfg.Kafka.CreateTopics {
		topicCtx, cancelTopic := context.WithTimeout(context.Background(), 10*time.Second)
		if err := kafka.EnsureTopics(topicCtx, cfg.Kafka.Brokers, log, cfg.Kafka.Topic); err != nil {
			logger.Warn("トピックの作成に失敗しました", zap.String("topic", cfg.Kafka.Topic), zap.Error(err))
		}
		cancelTopic()
	}
	producer := kafka.NewProducer(&cfg.Kafka)

	// 副作用ワーカー
	dispatcher := application.NewSideEffectDispatcher(
		redisinfra.NewBookingCache(redisClient),
		producer,
		application.SideEffectConfig{
			CacheTTL: cfg.Booking.CacheTTL,
			Timeout:  cfg.Booking.SideEffectTimeout,
		},
		m,
		logger.Named("side_effect"),
	)
	sideEffectWorker := worker.NewSideEffectWorker(dispatcher, cfg.Booking.SideEffectWorkers, cfg.Booking.SideEffectQueue, m)
	sideEffectWorker.Start()

	// サービス
	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	txManager := postgres.NewTxManager(db)

	eventService := application.NewEventService(eventRepo)
	bookingService := application.NewBookingService(
		txManager, eventRepo, bookingRepo, sideEffectWorker, m,
		logger.Named("booking"), cfg.Booking.AdmissionTimeout,
	)
	queryService := application.NewBookingQueryService(bookingRepo)

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	middleware.SetupMiddleware(e, m)

	handler.RegisterRoutes(e, handler.Handlers{
		Event:   handler.NewEventHandler(eventService),
		Booking: handler.NewBookingHandler(bookingService, queryService),
		Health: handler.NewHealthHandler(cfg.Env,
			handler.HealthCheck{Name: "database", Pinger: postgres.NewPinger(db)},
			handler.HealthCheck{Name: "redis", Pinger: redisinfra.NewPinger(redisClient)},
			handler.HealthCheck{Name: "kafka", Pinger: kafka.NewPinger(cfg.Kafka.Brokers)},
		),
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth(cfg.Metrics))

	// サーバー起動
	go func() {
		logger.Info("サーバーを起動します", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
	}

	// 受付済みの副作用を流し切ってから送信先を閉じる
	sideEffectWorker.Stop()
	if err := producer.Close(); err != nil {
		logger.Warn("通知キューのクローズに失敗しました", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		logger.Warn("Redisのクローズに失敗しました", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		logger.Warn("データベースのクローズに失敗しました", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
