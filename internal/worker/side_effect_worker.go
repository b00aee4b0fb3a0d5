package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/metrics"
)

// SideEffectHandler は確定した予約の副作用を実行する
type SideEffectHandler interface {
	Run(ctx context.Context, b *booking.Booking)
}

// SideEffectWorker は副作用をリクエスト処理の外で実行するワーカープール
type SideEffectWorker struct {
	handler SideEffectHandler
	workers int
	queue   chan *booking.Booking
	metrics *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewSideEffectWorker は新しいワーカーを作成
// Start を呼ぶまでジョブは処理されない
func NewSideEffectWorker(handler SideEffectHandler, workers, queueSize int, m *metrics.Metrics) *SideEffectWorker {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &SideEffectWorker{
		handler: handler,
		workers: workers,
		queue:   make(chan *booking.Booking, queueSize),
		metrics: m,
	}
}

// Start はワーカーの goroutine を起動する
func (w *SideEffectWorker) Start() {
	logger.Info("副作用ワーカー開始",
		zap.Int("workers", w.workers),
		zap.Int("queue_size", cap(w.queue)),
	)
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for b := range w.queue {
				w.gaugeDec()
				w.run(b)
			}
		}()
	}
}

// Dispatch はジョブをキューに積む。ブロックはしない
// キューが満杯、または停止後の場合は呼び出し元でそのまま実行する
func (w *SideEffectWorker) Dispatch(b *booking.Booking) {
	w.mu.RLock()
	if !w.closed {
		select {
		case w.queue <- b:
			w.gaugeInc()
			w.mu.RUnlock()
			return
		default:
		}
	}
	w.mu.RUnlock()

	logger.Debug("副作用をインラインで実行", zap.Int64("booking_id", b.ID))
	w.run(b)
}

// Stop は受付を締め切り、積まれたジョブをすべて処理し終えるまで待つ
func (w *SideEffectWorker) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
	logger.Info("副作用ワーカー停止")
}

func (w *SideEffectWorker) run(b *booking.Booking) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("副作用の実行中にパニック",
				zap.Int64("booking_id", b.ID),
				zap.Any("panic", r),
			)
		}
	}()
	w.handler.Run(context.Background(), b)
}

func (w *SideEffectWorker) gaugeInc() {
	if w.metrics != nil {
		w.metrics.SideEffectQueueDepth.Inc()
	}
}

func (w *SideEffectWorker) gaugeDec() {
	if w.metrics != nil {
		w.metrics.SideEffectQueueDepth.Dec()
	}
}
