package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/config"
	"github.com/sanosuguru/go-seat-booking/internal/infrastructure/kafka"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/logger"
)

// notifier は予約確定通知を受け取って配信する
// 現状はログに出すだけで、メールやプッシュ通知はこの handle に足していく
func main() {
	cfg := config.Load()
	log := logger.Init(cfg.Env).Named("notifier")
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(&cfg.Kafka, log)
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Warn("コンシューマのクローズに失敗しました", zap.Error(err))
		}
	}()

	log.Info("予約確定通知の受信を開始します",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group_id", cfg.Kafka.GroupID),
	)

	err := consumer.Run(ctx, func(ctx context.Context, data *kafka.BookingCreatedData) error {
		log.Info("予約確定を通知しました",
			zap.Int64("booking_id", data.BookingID),
			zap.Int64("event_id", data.EventID),
			zap.String("user_id", data.UserID),
			zap.Time("created_at", data.CreatedAt),
		)
		return nil
	})
	if err != nil {
		log.Error("通知の受信が異常終了しました", zap.Error(err))
		return
	}
	log.Info("通知の受信を停止しました")
}
