package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
)

// BookingQueryService はユーザー別・イベント別の予約一覧を提供する
type BookingQueryService struct {
	bookingRepo booking.Repository
}

func NewBookingQueryService(bookingRepo booking.Repository) *BookingQueryService {
	return &BookingQueryService{bookingRepo: bookingRepo}
}

// GetBookingsByUser はユーザーの予約をイベント名付きで新しい順に返す
func (s *BookingQueryService) GetBookingsByUser(ctx context.Context, userID string) ([]*booking.Booking, error) {
	if err := booking.ValidateUserID(userID); err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザー予約一覧取得に失敗: %w", err)
	}
	return nonNil(bookings), nil
}

// GetBookingsByEvent はイベントの予約を新しい順に返す
// 存在しないイベント（0以下のIDを含む）は空の一覧になる
func (s *BookingQueryService) GetBookingsByEvent(ctx context.Context, eventID int64) ([]*booking.Booking, error) {
	bookings, err := s.bookingRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("イベント予約一覧取得に失敗: %w", err)
	}
	return nonNil(bookings), nil
}

func nonNil(bookings []*booking.Booking) []*booking.Booking {
	if bookings == nil {
		return []*booking.Booking{}
	}
	return bookings
}
