package handler

import (
	"context"

	"github.com/sanosuguru/go-seat-booking/internal/application"
	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
)

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	ListEvents(ctx context.Context) ([]*event.Event, error)
	GetEventAvailability(ctx context.Context, id int64) (*event.Availability, error)
}

// BookingServiceInterface は予約受付のインターフェース
type BookingServiceInterface interface {
	Reserve(ctx context.Context, input application.ReserveInput) booking.Outcome
}

// BookingQueryServiceInterface は予約一覧のインターフェース
type BookingQueryServiceInterface interface {
	GetBookingsByUser(ctx context.Context, userID string) ([]*booking.Booking, error)
	GetBookingsByEvent(ctx context.Context, eventID int64) ([]*booking.Booking, error)
}
