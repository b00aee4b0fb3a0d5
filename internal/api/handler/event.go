package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-seat-booking/internal/api"
	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
)

type EventHandler struct {
	eventService EventServiceInterface
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type EventResponse struct {
	ID         int64  `json:"id" example:"1"`
	Name       string `json:"name" example:"Tech Conference 2024"`
	TotalSeats int    `json:"total_seats" example:"100"`
}

// EventDetailResponse は空席状況付きのイベント
type EventDetailResponse struct {
	EventResponse
	AvailableSeats int  `json:"available_seats" example:"42"`
	IsFull         bool `json:"is_full" example:"false"`
}

func toEventResponse(e *event.Event) EventResponse {
	return EventResponse{
		ID:         e.ID,
		Name:       e.Name,
		TotalSeats: e.TotalSeats,
	}
}

func toEventDetailResponse(a *event.Availability) *EventDetailResponse {
	return &EventDetailResponse{
		EventResponse:  toEventResponse(a.Event),
		AvailableSeats: a.AvailableSeats,
		IsFull:         a.IsFull,
	}
}

// GetByID godoc
// @Summary イベントを取得
// @Description 指定IDのイベントを空席数付きで取得します
// @Tags events
// @Produce json
// @Param id path int true "イベントID"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	id, ok := parseEventID(c.Param("id"))
	if !ok {
		return api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid event ID")
	}

	a, err := h.eventService.GetEventAvailability(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return api.Fail(c, http.StatusNotFound, api.CodeEventNotFound, "Event not found")
		}
		return err
	}
	return api.Success(c, http.StatusOK, toEventDetailResponse(a), "Event retrieved successfully")
}

// List godoc
// @Summary イベント一覧を取得
// @Description すべてのイベントをID順に取得します
// @Tags events
// @Produce json
// @Success 200 {object} api.Envelope
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventService.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}

	responses := make([]EventResponse, len(events))
	for i, e := range events {
		responses[i] = toEventResponse(e)
	}
	return api.Success(c, http.StatusOK, responses, "Events retrieved successfully")
}

// parseEventID はパスパラメータを正の整数として解釈する
// "12abc" や "1.5" は受け付けない
func parseEventID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
