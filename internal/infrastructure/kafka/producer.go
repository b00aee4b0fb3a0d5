package kafka

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sanosuguru/go-seat-booking/internal/config"
	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
)

// messageWriter は kafka.Writer のうち Producer が使う部分
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer は予約確定通知をKafkaへ送信する
type Producer struct {
	writer messageWriter
	now    func() time.Time
}

// NewProducer は全レプリカの確認を待つ Writer で Producer を作成する
// 同じ予約のメッセージは予約IDをキーに同じパーティションへ送られる
func NewProducer(cfg *config.KafkaConfig) *Producer {
	return newProducer(&kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	})
}

func newProducer(w messageWriter) *Producer {
	return &Producer{writer: w, now: time.Now}
}

// PublishBookingCreated は booking_created メッセージを送信する
// ctx のタイムアウトがそのまま送信の上限になる
func (p *Producer) PublishBookingCreated(ctx context.Context, b *booking.Booking) error {
	value, err := EncodeBookingCreated(b, p.now().UTC())
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(b.ID, 10)),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("予約通知の送信に失敗: %w", err)
	}
	return nil
}

// Close は未送信メッセージを送り切ってから Writer を閉じる
func (p *Producer) Close() error {
	return p.writer.Close()
}
