package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/config"
)

// messageReader は kafka.Reader のうち Consumer が使う部分
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// BookingCreatedHandler は受信した予約確定通知を処理する
type BookingCreatedHandler func(ctx context.Context, data *BookingCreatedData) error

// Consumer はコンシューマグループで予約確定通知を受信する
type Consumer struct {
	reader messageReader
	logger *zap.Logger
}

// NewConsumer は Consumer を作成する
func NewConsumer(cfg *config.KafkaConfig, logger *zap.Logger) *Consumer {
	return newConsumer(kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	}), logger)
}

func newConsumer(r messageReader, logger *zap.Logger) *Consumer {
	return &Consumer{reader: r, logger: logger}
}

// Run は ctx がキャンセルされるまでメッセージを処理する
// 処理後にコミットするので、コミット前に落ちたメッセージは再配信される（at-least-once）
// 読めないメッセージはパーティションを止めないようにログを残してコミットする
func (c *Consumer) Run(ctx context.Context, handle BookingCreatedHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("メッセージ取得に失敗: %w", err)
		}

		fields := []zap.Field{
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		}

		data, _, err := DecodeBookingCreated(msg.Value)
		if err != nil {
			c.logger.Warn("読み取れないメッセージをスキップ", append(fields, zap.Error(err))...)
		} else if err := handle(ctx, data); err != nil {
			c.logger.Error("通知処理に失敗",
				append(fields, zap.Int64("booking_id", data.BookingID), zap.Error(err))...)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("オフセットのコミットに失敗: %w", err)
		}
	}
}

// Close は Reader を閉じる
func (c *Consumer) Close() error {
	return c.reader.Close()
}
