package handler

import (
	"github.com/labstack/echo/v4"
)

// Handlers はルーティング対象のハンドラー一式
type Handlers struct {
	Event   *EventHandler
	Booking *BookingHandler
	Health  *HealthHandler
}

// RegisterRoutes はAPIのルートを登録する
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.Check)

	g := e.Group("/api")
	g.GET("/events", h.Event.List)
	g.GET("/events/:id", h.Event.GetByID)

	g.POST("/bookings/reserve", h.Booking.Reserve)
	g.GET("/bookings/user/:userId", h.Booking.GetByUser)
	g.GET("/bookings/event/:eventId", h.Booking.GetByEvent)
}
