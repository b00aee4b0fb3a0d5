package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/metrics"
)

// 副作用の種類（メトリクスとログのラベル）
const (
	EffectCache        = "cache"
	EffectNotification = "notification"
)

// BookingCache は確定済み予約のキャッシュ
type BookingCache interface {
	SetBooking(ctx context.Context, b *booking.Booking, ttl time.Duration) error
}

// BookingPublisher は予約確定通知の送信先
type BookingPublisher interface {
	PublishBookingCreated(ctx context.Context, b *booking.Booking) error
}

// SideEffectConfig は副作用ごとの設定
type SideEffectConfig struct {
	CacheTTL time.Duration
	Timeout  time.Duration
}

// SideEffectDispatcher は確定済み予約のキャッシュ書き込みと通知送信を行う
// どちらも失敗してもログとメトリクスに残すだけで、予約結果には影響しない
type SideEffectDispatcher struct {
	cache     BookingCache
	publisher BookingPublisher
	cfg       SideEffectConfig
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewSideEffectDispatcher は SideEffectDispatcher を作成する
// cache と publisher はどちらか一方が nil でもよい
func NewSideEffectDispatcher(cache BookingCache, publisher BookingPublisher, cfg SideEffectConfig, m *metrics.Metrics, logger *zap.Logger) *SideEffectDispatcher {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SideEffectDispatcher{cache: cache, publisher: publisher, cfg: cfg, metrics: m, logger: logger}
}

// Run は副作用を順に実行する
// 呼び出し元のキャンセルは引き継がず、副作用ごとに独立したタイムアウトを掛ける
func (d *SideEffectDispatcher) Run(ctx context.Context, b *booking.Booking) {
	base := context.WithoutCancel(ctx)

	if d.cache != nil {
		d.run(base, EffectCache, b, func(ctx context.Context) error {
			return d.cache.SetBooking(ctx, b, d.cfg.CacheTTL)
		})
	}
	if d.publisher != nil {
		d.run(base, EffectNotification, b, func(ctx context.Context) error {
			return d.publisher.PublishBookingCreated(ctx, b)
		})
	}
}

func (d *SideEffectDispatcher) run(base context.Context, effect string, b *booking.Booking, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(base, d.cfg.Timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		d.logger.Warn("副作用に失敗しました",
			zap.String("effect", effect),
			zap.Int64("booking_id", b.ID),
			zap.Int64("event_id", b.EventID),
			zap.String("user_id", b.UserID),
			zap.Error(err),
		)
		if d.metrics != nil {
			d.metrics.SideEffectFailuresTotal.WithLabelValues(effect).Inc()
		}
	}
}
