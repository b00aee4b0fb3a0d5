package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
	"github.com/sanosuguru/go-seat-booking/internal/infrastructure/postgres"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/metrics"
)

// DefaultAdmissionTimeout は予約受付トランザクションの既定の上限時間
const DefaultAdmissionTimeout = 5 * time.Second

// SideEffectRunner は確定した予約の副作用をリクエスト処理の外で実行する
type SideEffectRunner interface {
	Dispatch(b *booking.Booking)
}

// BookingService は予約受付（容量と重複の検査、確定）を行う
type BookingService struct {
	txManager        transaction.Manager
	eventRepo        event.Repository
	bookingRepo      booking.Repository
	sideEffects      SideEffectRunner
	metrics          *metrics.Metrics
	logger           *zap.Logger
	admissionTimeout time.Duration
}

// NewBookingService は BookingService を作成する
// sideEffects と m は nil でもよい
func NewBookingService(
	tm transaction.Manager,
	er event.Repository,
	br booking.Repository,
	sideEffects SideEffectRunner,
	m *metrics.Metrics,
	logger *zap.Logger,
	admissionTimeout time.Duration,
) *BookingService {
	if admissionTimeout <= 0 {
		admissionTimeout = DefaultAdmissionTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		txManager:        tm,
		eventRepo:        er,
		bookingRepo:      br,
		sideEffects:      sideEffects,
		metrics:          m,
		logger:           logger,
		admissionTimeout: admissionTimeout,
	}
}

type ReserveInput struct {
	EventID int64
	UserID  string
}

// Reserve は1席を予約する
// 結果は必ず Outcome のいずれかになり、副作用は作成成功時にだけ起動する
func (s *BookingService) Reserve(ctx context.Context, input ReserveInput) booking.Outcome {
	start := time.Now()
	outcome := s.admit(ctx, input)
	s.observe(outcome, time.Since(start))

	fields := []zap.Field{
		zap.Int64("event_id", input.EventID),
		zap.String("user_id", input.UserID),
		zap.String("outcome", outcome.Code()),
	}
	switch {
	case outcome.IsCreated():
		s.logger.Info("予約を作成しました", append(fields, zap.Int64("booking_id", outcome.Booking.ID))...)
		if s.sideEffects != nil {
			s.sideEffects.Dispatch(outcome.Booking)
		}
	case outcome.IsInternal():
		s.logger.Error("予約処理で内部エラーが発生しました",
			append(fields, zap.String("cause", internalCause(outcome.Err)), zap.Error(outcome.Err))...)
	default:
		s.logger.Info("予約を受け付けませんでした", fields...)
	}
	return outcome
}

// admit は1トランザクションでイベント行をロックし、容量と重複を確認して挿入する
// イベント行の FOR UPDATE により同じイベントへの受付はDB上で直列化される
func (s *BookingService) admit(ctx context.Context, input ReserveInput) booking.Outcome {
	b := booking.NewBooking(input.EventID, input.UserID)
	if err := b.Validate(); err != nil {
		return booking.Rejected(booking.RejectionValidation, err)
	}

	// クライアントが切断しても受付は最後まで進め、上限時間だけで打ち切る
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.admissionTimeout)
	defer cancel()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return internal(fmt.Errorf("トランザクション開始に失敗: %w", err))
	}
	// コミット後の Rollback は何もしない
	defer func() { _ = tx.Rollback() }()

	ev, err := s.eventRepo.GetByIDForUpdate(ctx, tx, input.EventID)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return booking.Rejected(booking.RejectionEventNotFound, err)
		}
		return internal(err)
	}

	booked, err := s.bookingRepo.CountByEvent(ctx, tx, ev.ID)
	if err != nil {
		return internal(err)
	}
	if booked >= ev.TotalSeats {
		return booking.Rejected(booking.RejectionEventFull, booking.ErrEventFull)
	}

	exists, err := s.bookingRepo.ExistsForUser(ctx, tx, ev.ID, input.UserID)
	if err != nil {
		return internal(err)
	}
	if exists {
		return booking.Rejected(booking.RejectionAlreadyBooked, booking.ErrAlreadyBooked)
	}

	if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
		if errors.Is(err, booking.ErrAlreadyBooked) {
			return booking.Rejected(booking.RejectionAlreadyBooked, err)
		}
		return internal(err)
	}

	if err := tx.Commit(); err != nil {
		if errors.Is(err, transaction.ErrUniqueViolation) {
			return booking.Rejected(booking.RejectionAlreadyBooked, err)
		}
		return internal(fmt.Errorf("コミットに失敗: %w", err))
	}

	b.EventName = ev.Name
	return booking.Created(b)
}

// internalCause は内部エラーの原因をログ用に分類する
func internalCause(err error) string {
	switch {
	case postgres.IsQueryCanceled(err):
		return "statement_timeout"
	case errors.Is(err, context.DeadlineExceeded):
		return "admission_timeout"
	}
	return "error"
}

func internal(err error) booking.Outcome {
	return booking.Rejected(booking.RejectionInternal, err)
}

func (s *BookingService) observe(outcome booking.Outcome, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	code := outcome.Code()
	s.metrics.BookingsTotal.WithLabelValues(code).Inc()
	s.metrics.AdmissionDuration.WithLabelValues(code).Observe(elapsed.Seconds())
}
