package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-seat-booking/internal/api"
	"github.com/sanosuguru/go-seat-booking/internal/application"
	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
)

type BookingHandler struct {
	bookingService BookingServiceInterface
	queryService   BookingQueryServiceInterface
}

func NewBookingHandler(bookingService BookingServiceInterface, queryService BookingQueryServiceInterface) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, queryService: queryService}
}

// ReserveRequest は予約リクエスト
// 欠落と型違いを区別するためにポインタで受ける
type ReserveRequest struct {
	EventID *int64  `json:"event_id" validate:"required,gt=0" example:"1"`
	UserID  *string `json:"user_id" validate:"required,min=1,max=255" example:"user_123"`
}

type BookingResponse struct {
	ID        int64     `json:"id" example:"1"`
	EventID   int64     `json:"event_id" example:"1"`
	UserID    string    `json:"user_id" example:"user_123"`
	EventName string    `json:"event_name,omitempty" example:"Tech Conference 2024"`
	CreatedAt time.Time `json:"created_at" example:"2025-01-01T10:00:00Z"`
}

func toBookingResponse(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		EventID:   b.EventID,
		UserID:    b.UserID,
		EventName: b.EventName,
		CreatedAt: b.CreatedAt,
	}
}

func toBookingResponses(bookings []*booking.Booking) []*BookingResponse {
	responses := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = toBookingResponse(b)
	}
	return responses
}

// rejectionStatus は拒否理由ごとのHTTPステータスとメッセージ
var rejectionStatus = map[booking.Rejection]struct {
	status  int
	message string
}{
	booking.RejectionEventNotFound: {http.StatusNotFound, "Event not found"},
	booking.RejectionEventFull:     {http.StatusConflict, "No available seats for this event"},
	booking.RejectionAlreadyBooked: {http.StatusConflict, "User has already booked a seat for this event"},
	booking.RejectionInternal:      {http.StatusInternalServerError, "Internal server error"},
}

// Reserve godoc
// @Summary 座席を予約
// @Description イベントの座席を1席予約します（1ユーザー1イベントにつき1席）
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body ReserveRequest true "予約情報"
// @Success 201 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Failure 409 {object} api.Envelope
// @Router /bookings/reserve [post]
func (h *BookingHandler) Reserve(c echo.Context) error {
	var req ReserveRequest
	if err := c.Bind(&req); err != nil {
		return api.Fail(c, http.StatusBadRequest, api.CodeValidation, bindMessage(err))
	}
	if err := c.Validate(&req); err != nil {
		var verr *api.ValidationError
		if errors.As(err, &verr) {
			return api.Fail(c, http.StatusBadRequest, api.CodeValidation, verr.Error())
		}
		return err
	}

	outcome := h.bookingService.Reserve(c.Request().Context(), application.ReserveInput{
		EventID: *req.EventID,
		UserID:  *req.UserID,
	})
	if outcome.IsCreated() {
		// 作成時のレスポンスにはイベント名を含めない
		resp := toBookingResponse(outcome.Booking)
		resp.EventName = ""
		return api.Success(c, http.StatusCreated, resp, "Booking created successfully")
	}

	if outcome.Rejection == booking.RejectionValidation {
		return api.Fail(c, http.StatusBadRequest, api.CodeValidation, domainValidationMessage(outcome.Err))
	}
	rejection := outcome.Rejection
	rs, ok := rejectionStatus[rejection]
	if !ok {
		rejection = booking.RejectionInternal
		rs = rejectionStatus[rejection]
	}
	return api.Fail(c, rs.status, string(rejection), rs.message)
}

// GetByUser godoc
// @Summary ユーザーの予約一覧を取得
// @Description 指定ユーザーの予約をイベント名付きで新しい順に返します
// @Tags bookings
// @Produce json
// @Param userId path string true "ユーザーID"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Router /bookings/user/{userId} [get]
func (h *BookingHandler) GetByUser(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return api.Fail(c, http.StatusBadRequest, api.CodeValidation, "User ID is required")
	}

	bookings, err := h.queryService.GetBookingsByUser(c.Request().Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrUserIDRequired):
			return api.Fail(c, http.StatusBadRequest, api.CodeValidation, "User ID is required")
		case errors.Is(err, booking.ErrUserIDTooLong):
			return api.Fail(c, http.StatusBadRequest, api.CodeValidation, "User ID cannot exceed 255 characters")
		}
		return err
	}
	return api.Success(c, http.StatusOK, toBookingResponses(bookings), "Bookings retrieved successfully")
}

// GetByEvent godoc
// @Summary イベントの予約一覧を取得
// @Description 指定イベントの予約を新しい順に返します（存在しないイベントは空配列）
// @Tags bookings
// @Produce json
// @Param eventId path int true "イベントID"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Router /bookings/event/{eventId} [get]
func (h *BookingHandler) GetByEvent(c echo.Context) error {
	// 整数でさえあれば 0 や負数も受け付け、該当なしとして空配列を返す
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil {
		return api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid event ID")
	}

	bookings, err := h.queryService.GetBookingsByEvent(c.Request().Context(), eventID)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, toBookingResponses(bookings), "Event bookings retrieved successfully")
}

// bindMessage はボディの解析エラーを利用者向けのメッセージにする
func bindMessage(err error) string {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		switch ute.Field {
		case "event_id":
			// 小数は数値だが整数ではない
			if strings.HasPrefix(ute.Value, "number") {
				return "Event ID must be an integer"
			}
			return "Event ID must be a number"
		case "user_id":
			return "User ID must be a string"
		}
	}
	return "Request body must be valid JSON"
}

// domainValidationMessage はドメイン検証エラーをメッセージにする
func domainValidationMessage(err error) string {
	switch {
	case errors.Is(err, booking.ErrInvalidEventID):
		return "Event ID must be positive"
	case errors.Is(err, booking.ErrUserIDRequired):
		return "User ID cannot be empty"
	case errors.Is(err, booking.ErrUserIDTooLong):
		return "User ID cannot exceed 255 characters"
	}
	return "Invalid booking request"
}
